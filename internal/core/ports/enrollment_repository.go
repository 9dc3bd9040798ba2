package ports

import (
	"context"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// EnrollPayload is the body of the registry's enroll_client action. Field
// names are part of the upstream contract.
type EnrollPayload struct {
	ClientID       string `json:"client_id"`
	ProgramID      int64  `json:"program_id"`
	EnrollmentDate string `json:"enrollment_date,omitempty"`
	FacilityName   string `json:"facility_name,omitempty"`
	MFLCode        string `json:"mfl_code,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// EnrollmentPayload is the wire shape for generic enrollment updates.
type EnrollmentPayload struct {
	EnrollmentDate string `json:"enrollment_date"`
	IsActive       bool   `json:"is_active"`
	FacilityName   string `json:"facility_name,omitempty"`
	MFLCode        string `json:"mfl_code,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// EnrollmentFilter narrows List on the registry side.
type EnrollmentFilter struct {
	Client  domain.ClientID
	Program int64
}

// EnrollmentRepository wraps the registry's enrollment collection and its two
// action endpoints: Enroll (distinct from generic create) and ToggleActive.
type EnrollmentRepository interface {
	List(ctx context.Context, filter EnrollmentFilter) ([]domain.Enrollment, error)
	Get(ctx context.Context, id int64) (*domain.Enrollment, error)
	Enroll(ctx context.Context, p EnrollPayload) (*domain.Enrollment, error)
	Update(ctx context.Context, id int64, p EnrollmentPayload) (*domain.Enrollment, error)
	Delete(ctx context.Context, id int64) error
	// ToggleActive flips the enrollment's active flag server-side and returns
	// the new value.
	ToggleActive(ctx context.Context, id int64) (bool, error)
}

// DashboardRepository fetches the registry's derived summary aggregate.
type DashboardRepository interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}
