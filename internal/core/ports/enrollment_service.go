package ports

import (
	"context"
	"time"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// EnrollmentFormData holds the two complete reference collections the
// enrollment form renders as selection lists.
type EnrollmentFormData struct {
	Clients    []domain.Client
	Programs   []domain.Program
	Enrollment *domain.Enrollment // nil in create mode
}

// EnrollInput carries a new-enrollment submission. Origin, when set, is the
// client profile the "enroll this client" shortcut started from.
type EnrollInput struct {
	ClientID       domain.ClientID
	ProgramID      int64
	EnrollmentDate time.Time
	FacilityName   string
	MFLCode        string
	Notes          string
	Origin         domain.ClientID
}

// UpdateEnrollmentInput carries an edit-mode submission.
type UpdateEnrollmentInput struct {
	ID             int64
	EnrollmentDate time.Time
	IsActive       bool
	FacilityName   string
	MFLCode        string
	Notes          string
}

// EnrollResult reports a successful enrollment save.
type EnrollResult struct {
	Enrollment domain.Enrollment
	RedirectTo string
	Notice     string
}

// EnrollmentRow is one list row with the client display name resolved.
type EnrollmentRow struct {
	domain.Enrollment
	ClientName string `json:"client_name,omitempty"`
}

// EnrollmentListInput carries the enrollment list controller's query state.
type EnrollmentListInput struct {
	Query    string
	Page     int
	PageSize int
}

// EnrollmentListView is the prepared enrollment list render state.
type EnrollmentListView struct {
	Items    []EnrollmentRow
	Total    int
	Page     int
	PageSize int
}

// EnrollmentService implements the enrollment form and list controllers.
type EnrollmentService interface {
	// NewForm loads both reference collections in full. Returns
	// domain.ErrNoClients or domain.ErrNoPrograms when either is empty.
	NewForm(ctx context.Context) (*EnrollmentFormData, error)
	LoadForm(ctx context.Context, id int64) (*EnrollmentFormData, error)
	// Enroll performs the registry's dedicated enroll action, never a generic
	// create.
	Enroll(ctx context.Context, in EnrollInput) (*EnrollResult, error)
	Update(ctx context.Context, in UpdateEnrollmentInput) (*EnrollResult, error)
	List(ctx context.Context, in EnrollmentListInput) (*EnrollmentListView, error)
	// ToggleActive flips one enrollment's flag and returns the new value so
	// the caller can patch its row without refetching the collection.
	ToggleActive(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// DashboardService serves the read-only summary view.
type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}
