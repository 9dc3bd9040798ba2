package ports

import (
	"context"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// ProgramPayload is the wire shape for program writes. EndDate and Capacity
// stay pointers so an explicit null reaches the registry for cleared fields.
type ProgramPayload struct {
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	Code                string  `json:"code"`
	StartDate           string  `json:"start_date"`
	EndDate             *string `json:"end_date"`
	EligibilityCriteria string  `json:"eligibility_criteria"`
	Capacity            *int    `json:"capacity"`
	Location            string  `json:"location"`
	CategoryID          int64   `json:"category_id"`
}

// ProgramRepository wraps the registry's program collection.
type ProgramRepository interface {
	List(ctx context.Context) ([]domain.Program, error)
	Get(ctx context.Context, id int64) (*domain.Program, error)
	Create(ctx context.Context, p ProgramPayload) (*domain.Program, error)
	Update(ctx context.Context, id int64, p ProgramPayload) (*domain.Program, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.Program, error)
}

// CategoryPayload is the wire shape for category writes.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryRepository wraps the registry's program-category collection.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, p CategoryPayload) (*domain.Category, error)
	Update(ctx context.Context, id int64, p CategoryPayload) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}
