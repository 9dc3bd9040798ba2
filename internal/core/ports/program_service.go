package ports

import (
	"context"
	"time"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// ProgramFormData is what the program form needs before it can render:
// reference categories plus, in edit mode, the record being edited.
type ProgramFormData struct {
	Categories []domain.Category
	Program    *domain.Program // nil in create mode
}

// SaveProgramInput carries one program form submission.
type SaveProgramInput struct {
	ID                  int64  // 0 = create mode
	Name                string
	Description         string
	Code                string // blank = derive one
	StartDate           time.Time
	EndDate             *time.Time
	EligibilityCriteria string
	Capacity            *int
	Location            string
	CategoryID          int64
}

// SaveProgramResult reports a successful program save.
type SaveProgramResult struct {
	Program domain.Program
	// CodeGenerated is true when the submitted code was blank and the service
	// derived one.
	CodeGenerated bool
	RedirectTo    string
	Notice        string
}

// ProgramListInput carries the program list controller's query state.
type ProgramListInput struct {
	Query      string
	CategoryID int64
	Page       int
	PageSize   int
}

// ProgramListView is the prepared program list render state.
type ProgramListView struct {
	Items    []domain.Program
	Total    int
	Page     int
	PageSize int
}

// ProgramService implements the program form and list controllers, including
// derivation of a unique program code when the field is left blank.
type ProgramService interface {
	// NewForm loads reference data for create mode. Returns
	// domain.ErrNoCategories when no categories exist yet.
	NewForm(ctx context.Context) (*ProgramFormData, error)
	// LoadForm loads reference data plus the existing record for edit mode.
	LoadForm(ctx context.Context, id int64) (*ProgramFormData, error)
	Save(ctx context.Context, in SaveProgramInput) (*SaveProgramResult, error)
	List(ctx context.Context, in ProgramListInput) (*ProgramListView, error)
	Get(ctx context.Context, id int64) (*domain.Program, error)
	Delete(ctx context.Context, id int64) error

	Categories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
