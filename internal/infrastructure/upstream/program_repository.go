package upstream

import (
	"context"
	"fmt"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// ProgramRepository implements ports.ProgramRepository against the registry's
// program collection.
type ProgramRepository struct {
	client *Client
}

func NewProgramRepository(client *Client) *ProgramRepository {
	return &ProgramRepository{client: client}
}

func (r *ProgramRepository) List(ctx context.Context) ([]domain.Program, error) {
	return collect[domain.Program](ctx, r.client, "/programs/", nil)
}

func (r *ProgramRepository) Get(ctx context.Context, id int64) (*domain.Program, error) {
	body, err := r.client.get(ctx, fmt.Sprintf("/programs/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Program](body)
}

func (r *ProgramRepository) Create(ctx context.Context, p ports.ProgramPayload) (*domain.Program, error) {
	body, err := r.client.post(ctx, "/programs/", p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Program](body)
}

func (r *ProgramRepository) Update(ctx context.Context, id int64, p ports.ProgramPayload) (*domain.Program, error) {
	body, err := r.client.put(ctx, fmt.Sprintf("/programs/%d/", id), p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Program](body)
}

func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.delete(ctx, fmt.Sprintf("/programs/%d/", id))
	return err
}

func (r *ProgramRepository) Search(ctx context.Context, query string) ([]domain.Program, error) {
	return collect[domain.Program](ctx, r.client, "/programs/search/", map[string]string{"q": query})
}

// CategoryRepository implements ports.CategoryRepository against the
// registry's program-category collection.
type CategoryRepository struct {
	client *Client
}

func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return collect[domain.Category](ctx, r.client, "/program-categories/", nil)
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (*domain.Category, error) {
	body, err := r.client.get(ctx, fmt.Sprintf("/program-categories/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Category](body)
}

func (r *CategoryRepository) Create(ctx context.Context, p ports.CategoryPayload) (*domain.Category, error) {
	body, err := r.client.post(ctx, "/program-categories/", p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Category](body)
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, p ports.CategoryPayload) (*domain.Category, error) {
	body, err := r.client.put(ctx, fmt.Sprintf("/program-categories/%d/", id), p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Category](body)
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.delete(ctx, fmt.Sprintf("/program-categories/%d/", id))
	return err
}
