package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// EnrollmentService implements the enrollment form and list controllers.
type EnrollmentService struct {
	enrollments ports.EnrollmentRepository
	clients     ports.ClientRepository
	programs    ports.ProgramRepository
	log         zerolog.Logger
}

func NewEnrollmentService(
	enrollments ports.EnrollmentRepository,
	clients ports.ClientRepository,
	programs ports.ProgramRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		clients:     clients,
		programs:    programs,
		log:         log,
	}
}

// NewForm loads both reference collections in full; the form cannot render a
// selection list from a partial page.
func (s *EnrollmentService) NewForm(ctx context.Context) (*ports.EnrollmentFormData, error) {
	clients, err := s.clients.List(ctx, ports.ClientFilter{})
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, domain.ErrNoClients
	}
	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return nil, domain.ErrNoPrograms
	}
	return &ports.EnrollmentFormData{Clients: clients, Programs: programs}, nil
}

func (s *EnrollmentService) LoadForm(ctx context.Context, id int64) (*ports.EnrollmentFormData, error) {
	form, err := s.NewForm(ctx)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	form.Enrollment = enrollment
	return form, nil
}

// Enroll submits through the registry's dedicated enroll action. The
// registry owns duplicate detection; its rejection passes through untouched.
func (s *EnrollmentService) Enroll(ctx context.Context, in ports.EnrollInput) (*ports.EnrollResult, error) {
	if fe := validateEnroll(in); len(fe) > 0 {
		return nil, fe
	}

	date := in.EnrollmentDate
	if date.IsZero() {
		date = time.Now()
	}
	saved, err := s.enrollments.Enroll(ctx, ports.EnrollPayload{
		ClientID:       string(in.ClientID),
		ProgramID:      in.ProgramID,
		EnrollmentDate: date.Format(domain.DateLayout),
		FacilityName:   in.FacilityName,
		MFLCode:        in.MFLCode,
		Notes:          in.Notes,
	})
	if err != nil {
		return nil, err
	}

	redirect := "/views/enrollments"
	if in.Origin != "" {
		redirect = fmt.Sprintf("/views/clients/%s", in.Origin)
	}
	s.log.Info().
		Str("client_id", string(in.ClientID)).
		Int64("program_id", in.ProgramID).
		Msg("client enrolled")
	return &ports.EnrollResult{
		Enrollment: *saved,
		RedirectTo: redirect,
		Notice:     "Client enrolled successfully",
	}, nil
}

func (s *EnrollmentService) Update(ctx context.Context, in ports.UpdateEnrollmentInput) (*ports.EnrollResult, error) {
	if in.EnrollmentDate.IsZero() {
		return nil, domain.FieldErrors{"enrollment_date": "Enrollment date is required"}
	}
	saved, err := s.enrollments.Update(ctx, in.ID, ports.EnrollmentPayload{
		EnrollmentDate: in.EnrollmentDate.Format(domain.DateLayout),
		IsActive:       in.IsActive,
		FacilityName:   in.FacilityName,
		MFLCode:        in.MFLCode,
		Notes:          in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &ports.EnrollResult{
		Enrollment: *saved,
		RedirectTo: "/views/enrollments",
		Notice:     "Enrollment updated successfully",
	}, nil
}

// List joins enrollment rows with client display names, then filters and
// paginates in memory.
func (s *EnrollmentService) List(ctx context.Context, in ports.EnrollmentListInput) (*ports.EnrollmentListView, error) {
	enrollments, err := s.enrollments.List(ctx, ports.EnrollmentFilter{})
	if err != nil {
		return nil, err
	}

	names := map[domain.ClientID]string{}
	clients, err := s.clients.List(ctx, ports.ClientFilter{})
	if err != nil {
		// The list still renders without names; rows fall back to the raw id.
		s.log.Warn().Err(err).Msg("client name join skipped")
	} else {
		for _, c := range clients {
			names[c.ID] = c.FullName()
		}
	}

	rows := make([]ports.EnrollmentRow, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, ports.EnrollmentRow{
			Enrollment: e,
			ClientName: names[e.Client],
		})
	}
	rows = filterItems(rows, in.Query, func(r ports.EnrollmentRow, needle string) bool {
		return containsFold(needle,
			r.ClientName, string(r.Client), r.ProgramName, r.ProgramCode, r.FacilityName)
	})

	window, total, page := paginate(rows, in.Page, in.PageSize)
	return &ports.EnrollmentListView{
		Items:    window,
		Total:    total,
		Page:     page,
		PageSize: pageSizeOrDefault(in.PageSize),
	}, nil
}

// ToggleActive flips one row server-side and reports the new value so the
// caller patches that row alone.
func (s *EnrollmentService) ToggleActive(ctx context.Context, id int64) (bool, error) {
	return s.enrollments.ToggleActive(ctx, id)
}

func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	return s.enrollments.Delete(ctx, id)
}

func validateEnroll(in ports.EnrollInput) domain.FieldErrors {
	fe := domain.FieldErrors{}
	if in.ClientID == "" {
		fe["client_id"] = "Client is required"
	}
	if in.ProgramID == 0 {
		fe["program_id"] = "Program is required"
	}
	return fe
}

// DashboardService serves the registry's read-only summary aggregate.
type DashboardService struct {
	dashboard ports.DashboardRepository
}

func NewDashboardService(dashboard ports.DashboardRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	return s.dashboard.Summary(ctx)
}
