package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// ClientService implements the client form and list controllers on top of
// the registry's client collection.
type ClientService struct {
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

// List fetches the complete collection once, derives the county facet from
// it, then filters and paginates in memory.
func (s *ClientService) List(ctx context.Context, in ports.ClientListInput) (*ports.ClientListView, error) {
	all, err := s.clients.List(ctx, ports.ClientFilter{})
	if err != nil {
		return nil, err
	}

	counties := make([]string, 0, len(all))
	for _, c := range all {
		counties = append(counties, c.County)
	}

	rows := all
	if in.County != "" {
		kept := make([]domain.Client, 0, len(rows))
		for _, c := range rows {
			if c.County == in.County {
				kept = append(kept, c)
			}
		}
		rows = kept
	}
	rows = filterItems(rows, in.Query, func(c domain.Client, needle string) bool {
		return containsFold(needle,
			c.FullName(), string(c.ID), c.IDNumber, c.PhoneNumber, c.Email, c.County)
	})

	window, total, page := paginate(rows, in.Page, in.PageSize)
	return &ports.ClientListView{
		Items:    window,
		Counties: distinctSorted(counties),
		Total:    total,
		Page:     page,
		PageSize: pageSizeOrDefault(in.PageSize),
	}, nil
}

func (s *ClientService) Search(ctx context.Context, query string) ([]domain.Client, error) {
	return s.clients.Search(ctx, query)
}

func (s *ClientService) Get(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	return s.clients.Get(ctx, id)
}

// Profile loads the client record together with its enrollments in one call
// for the profile view.
func (s *ClientService) Profile(ctx context.Context, id domain.ClientID) (*ports.ClientProfile, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.clients.Enrollments(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.ClientProfile{Client: *client, Enrollments: enrollments}, nil
}

// Save validates the submission, then creates or updates depending on
// whether an id is present. Validation failures never reach the registry.
func (s *ClientService) Save(ctx context.Context, in ports.SaveClientInput) (*ports.SaveClientResult, error) {
	if fe := validateClient(in); len(fe) > 0 {
		return nil, fe
	}
	payload := clientPayload(in)

	var (
		saved  *domain.Client
		err    error
		notice string
	)
	if in.ID == "" {
		saved, err = s.clients.Create(ctx, payload)
		notice = "Client registered successfully"
	} else {
		saved, err = s.clients.Update(ctx, in.ID, payload)
		notice = "Client updated successfully"
	}
	if err != nil {
		return nil, err
	}

	redirect := "/views/clients"
	if in.Origin != "" {
		redirect = fmt.Sprintf("/views/clients/%s", in.Origin)
	}
	s.log.Info().Str("client_id", string(saved.ID)).Bool("created", in.ID == "").Msg("client saved")
	return &ports.SaveClientResult{Client: *saved, RedirectTo: redirect, Notice: notice}, nil
}

// Register runs the self-registration action, which needs no session.
func (s *ClientService) Register(ctx context.Context, in ports.SaveClientInput) (*ports.SaveClientResult, error) {
	if fe := validateClient(in); len(fe) > 0 {
		return nil, fe
	}
	saved, err := s.clients.Register(ctx, clientPayload(in))
	if err != nil {
		return nil, err
	}
	return &ports.SaveClientResult{
		Client:     *saved,
		RedirectTo: "/login",
		Notice:     "Registration received",
	}, nil
}

func (s *ClientService) Delete(ctx context.Context, id domain.ClientID) error {
	return s.clients.Delete(ctx, id)
}

func clientPayload(in ports.SaveClientInput) ports.ClientPayload {
	return ports.ClientPayload{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IDNumber:    in.IDNumber,
		DateOfBirth: in.DateOfBirth.Format(domain.DateLayout),
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		County:      in.County,
		SubCounty:   in.SubCounty,
		Ward:        in.Ward,
		BloodType:   in.BloodType,
		Allergies:   in.Allergies,
	}
}

func validateClient(in ports.SaveClientInput) domain.FieldErrors {
	fe := domain.FieldErrors{}
	if in.FirstName == "" {
		fe["first_name"] = "First name is required"
	}
	if in.LastName == "" {
		fe["last_name"] = "Last name is required"
	}
	if in.DateOfBirth.IsZero() {
		fe["date_of_birth"] = "Date of birth is required"
	} else if in.DateOfBirth.After(time.Now()) {
		fe["date_of_birth"] = "Date of birth cannot be in the future"
	}
	switch domain.Gender(in.Gender) {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		fe["gender"] = "Gender must be one of M, F, O"
	}
	if in.County == "" {
		fe["county"] = "County is required"
	}
	if in.SubCounty == "" {
		fe["sub_county"] = "Sub-county is required"
	}
	return fe
}

func pageSizeOrDefault(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	return n
}
