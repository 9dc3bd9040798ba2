package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// ClientRepository implements ports.ClientRepository against the registry's
// client collection.
type ClientRepository struct {
	client *Client
}

func NewClientRepository(client *Client) *ClientRepository {
	return &ClientRepository{client: client}
}

func (r *ClientRepository) List(ctx context.Context, filter ports.ClientFilter) ([]domain.Client, error) {
	query := map[string]string{}
	if filter.County != "" {
		query["county"] = filter.County
	}
	if filter.Gender != "" {
		query["gender"] = filter.Gender
	}
	return collect[domain.Client](ctx, r.client, "/clients/", query)
}

func (r *ClientRepository) Get(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	body, err := r.client.get(ctx, clientPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Client](body)
}

func (r *ClientRepository) Create(ctx context.Context, p ports.ClientPayload) (*domain.Client, error) {
	body, err := r.client.post(ctx, "/clients/", p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Client](body)
}

func (r *ClientRepository) Update(ctx context.Context, id domain.ClientID, p ports.ClientPayload) (*domain.Client, error) {
	body, err := r.client.put(ctx, clientPath(id), p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Client](body)
}

func (r *ClientRepository) Delete(ctx context.Context, id domain.ClientID) error {
	_, err := r.client.delete(ctx, clientPath(id))
	return err
}

func (r *ClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	return collect[domain.Client](ctx, r.client, "/clients/search/", map[string]string{"q": query})
}

func (r *ClientRepository) Enrollments(ctx context.Context, id domain.ClientID) ([]domain.Enrollment, error) {
	return collect[domain.Enrollment](ctx, r.client, clientPath(id)+"enrollments/", nil)
}

func (r *ClientRepository) Register(ctx context.Context, p ports.ClientPayload) (*domain.Client, error) {
	body, err := r.client.post(ctx, "/clients/register/", p)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Client](body)
}

func clientPath(id domain.ClientID) string {
	return fmt.Sprintf("/clients/%s/", url.PathEscape(string(id)))
}
