package ports

import (
	"context"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// ClientPayload is the wire shape the registry expects for client writes.
// Dates are DateLayout strings by the time they reach the repository.
type ClientPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IDNumber    string `json:"id_number,omitempty"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	County      string `json:"county"`
	SubCounty   string `json:"sub_county"`
	Ward        string `json:"ward,omitempty"`
	BloodType   string `json:"blood_type,omitempty"`
	Allergies   string `json:"allergies,omitempty"`
}

// ClientFilter narrows List on the registry side.
type ClientFilter struct {
	County string
	Gender string
}

// ClientRepository wraps the registry's client collection. List returns the
// complete collection: implementations follow pagination continuation links
// until the set is exhausted.
type ClientRepository interface {
	List(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
	Get(ctx context.Context, id domain.ClientID) (*domain.Client, error)
	Create(ctx context.Context, p ClientPayload) (*domain.Client, error)
	Update(ctx context.Context, id domain.ClientID, p ClientPayload) (*domain.Client, error)
	Delete(ctx context.Context, id domain.ClientID) error
	// Search runs the registry's free-text search endpoint.
	Search(ctx context.Context, query string) ([]domain.Client, error)
	// Enrollments returns the enrollments attached to one client.
	Enrollments(ctx context.Context, id domain.ClientID) ([]domain.Enrollment, error)
	// Register is the self-registration action, distinct from Create.
	Register(ctx context.Context, p ClientPayload) (*domain.Client, error)
}
