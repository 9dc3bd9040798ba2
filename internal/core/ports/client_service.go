package ports

import (
	"context"
	"time"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// SaveClientInput carries one client form submission. Dates arrive as parsed
// values; the service renders them into the registry's fixed calendar-date
// form on submit.
type SaveClientInput struct {
	ID          domain.ClientID // empty = create mode
	FirstName   string
	LastName    string
	IDNumber    string
	DateOfBirth time.Time
	Gender      string
	PhoneNumber string
	Email       string
	County      string
	SubCounty   string
	Ward        string
	BloodType   string
	Allergies   string
	// Origin, when set, is the client profile the caller arrived from; success
	// navigation returns there instead of the owning list.
	Origin string
}

// SaveClientResult reports a successful form submission.
type SaveClientResult struct {
	Client domain.Client
	// RedirectTo is the navigation target after the save.
	RedirectTo string
	Notice     string
}

// ClientListInput carries the list controller's query state.
type ClientListInput struct {
	Query    string
	County   string
	Page     int // 0-based page index
	PageSize int
}

// ClientListView is the fully prepared list render state.
type ClientListView struct {
	Items    []domain.Client
	Counties []string // distinct counties present in the collection, sorted
	Total    int      // rows after filtering, before pagination
	Page     int
	PageSize int
}

// ClientProfile is a client record together with its enrollments.
type ClientProfile struct {
	Client      domain.Client
	Enrollments []domain.Enrollment
}

// ClientService implements the client form and list controllers.
type ClientService interface {
	List(ctx context.Context, in ClientListInput) (*ClientListView, error)
	// Search delegates free-text search to the registry.
	Search(ctx context.Context, query string) ([]domain.Client, error)
	Get(ctx context.Context, id domain.ClientID) (*domain.Client, error)
	Profile(ctx context.Context, id domain.ClientID) (*ClientProfile, error)
	Save(ctx context.Context, in SaveClientInput) (*SaveClientResult, error)
	// Register is the unauthenticated self-registration flow.
	Register(ctx context.Context, in SaveClientInput) (*SaveClientResult, error)
	Delete(ctx context.Context, id domain.ClientID) error
}
