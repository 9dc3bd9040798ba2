package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/api/metrics"
	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// codeAttempts bounds the uniqueness checks run for a derived program code.
const codeAttempts = 3

// ProgramService implements the program form and list controllers plus
// category management.
type ProgramService struct {
	programs   ports.ProgramRepository
	categories ports.CategoryRepository
	log        zerolog.Logger

	// randInt is swappable in tests; defaults to the package RNG.
	randInt func(n int) int
}

func NewProgramService(programs ports.ProgramRepository, categories ports.CategoryRepository, log zerolog.Logger) *ProgramService {
	return &ProgramService{
		programs:   programs,
		categories: categories,
		log:        log,
		randInt:    rand.IntN,
	}
}

// NewForm loads the category reference list. A program cannot exist without a
// category, so an empty list blocks the form.
func (s *ProgramService) NewForm(ctx context.Context) (*ports.ProgramFormData, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, domain.ErrNoCategories
	}
	return &ports.ProgramFormData{Categories: cats}, nil
}

func (s *ProgramService) LoadForm(ctx context.Context, id int64) (*ports.ProgramFormData, error) {
	form, err := s.NewForm(ctx)
	if err != nil {
		return nil, err
	}
	program, err := s.programs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	form.Program = program
	return form, nil
}

// Save validates the submission, derives a code when the field was left
// blank, then creates or updates. Code derivation failures are absorbed: the
// candidate goes through unchecked rather than blocking the save.
func (s *ProgramService) Save(ctx context.Context, in ports.SaveProgramInput) (*ports.SaveProgramResult, error) {
	if fe := validateProgram(in); len(fe) > 0 {
		return nil, fe
	}

	code := strings.TrimSpace(in.Code)
	generated := false
	if code == "" {
		code = s.deriveCode(ctx, in)
		generated = true
		metrics.ProgramCodesGeneratedTotal.Inc()
	}

	payload := ports.ProgramPayload{
		Name:                in.Name,
		Description:         in.Description,
		Code:                code,
		StartDate:           in.StartDate.Format(domain.DateLayout),
		EligibilityCriteria: in.EligibilityCriteria,
		Capacity:            in.Capacity,
		Location:            in.Location,
		CategoryID:          in.CategoryID,
	}
	if in.EndDate != nil {
		end := in.EndDate.Format(domain.DateLayout)
		payload.EndDate = &end
	}

	var (
		saved  *domain.Program
		err    error
		notice string
	)
	if in.ID == 0 {
		saved, err = s.programs.Create(ctx, payload)
		notice = "Program created successfully"
	} else {
		saved, err = s.programs.Update(ctx, in.ID, payload)
		notice = "Program updated successfully"
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("program_id", saved.ID).Bool("code_generated", generated).Msg("program saved")
	return &ports.SaveProgramResult{
		Program:       *saved,
		CodeGenerated: generated,
		RedirectTo:    "/views/programs",
		Notice:        notice,
	}, nil
}

func (s *ProgramService) List(ctx context.Context, in ports.ProgramListInput) (*ports.ProgramListView, error) {
	all, err := s.programs.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := all
	if in.CategoryID != 0 {
		kept := make([]domain.Program, 0, len(rows))
		for _, p := range rows {
			if p.CategoryRef() == in.CategoryID {
				kept = append(kept, p)
			}
		}
		rows = kept
	}
	rows = filterItems(rows, in.Query, func(p domain.Program, needle string) bool {
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		return containsFold(needle, p.Name, p.Code, p.Location, categoryName)
	})

	window, total, page := paginate(rows, in.Page, in.PageSize)
	return &ports.ProgramListView{
		Items:    window,
		Total:    total,
		Page:     page,
		PageSize: pageSizeOrDefault(in.PageSize),
	}, nil
}

func (s *ProgramService) Get(ctx context.Context, id int64) (*domain.Program, error) {
	return s.programs.Get(ctx, id)
}

func (s *ProgramService) Delete(ctx context.Context, id int64) error {
	return s.programs.Delete(ctx, id)
}

func (s *ProgramService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *ProgramService) SaveCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.FieldErrors{"name": "Category name is required"}
	}
	payload := ports.CategoryPayload{Name: name, Description: description}
	if id == 0 {
		return s.categories.Create(ctx, payload)
	}
	return s.categories.Update(ctx, id, payload)
}

func (s *ProgramService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// deriveCode builds a candidate code from the category and program names and
// checks it for uniqueness up to codeAttempts times. Lookup failures are
// swallowed: the last candidate is used regardless.
func (s *ProgramService) deriveCode(ctx context.Context, in ports.SaveProgramInput) string {
	prefix := "PG"
	if cat, err := s.categories.Get(ctx, in.CategoryID); err == nil && cat != nil {
		if p := letterPrefix(cat.Name, 2); p != "" {
			prefix = p
		}
	}
	initials := nameInitials(in.Name, 3)

	var candidate string
	for attempt := 0; attempt < codeAttempts; attempt++ {
		candidate = fmt.Sprintf("%s-%s%03d", prefix, initials, s.randInt(1000))
		taken, err := s.codeTaken(ctx, candidate)
		if err != nil {
			s.log.Debug().Err(err).Str("code", candidate).Msg("code uniqueness check skipped")
			return candidate
		}
		if !taken {
			return candidate
		}
	}
	return candidate
}

func (s *ProgramService) codeTaken(ctx context.Context, code string) (bool, error) {
	matches, err := s.programs.Search(ctx, code)
	if err != nil {
		return false, err
	}
	for _, p := range matches {
		if strings.EqualFold(p.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

// letterPrefix returns the first n letters of s, uppercased.
func letterPrefix(s string, n int) string {
	out := make([]rune, 0, n)
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == n {
			break
		}
	}
	return string(out)
}

// nameInitials returns the uppercased first letter of up to n words.
func nameInitials(s string, n int) string {
	out := make([]rune, 0, n)
	for _, word := range strings.Fields(s) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				out = append(out, unicode.ToUpper(r))
			}
			break
		}
		if len(out) == n {
			break
		}
	}
	if len(out) == 0 {
		return "X"
	}
	return string(out)
}

func validateProgram(in ports.SaveProgramInput) domain.FieldErrors {
	fe := domain.FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe["name"] = "Program name is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		fe["description"] = "Description is required"
	}
	if strings.TrimSpace(in.Location) == "" {
		fe["location"] = "Location is required"
	}
	if in.CategoryID == 0 {
		fe["category_id"] = "Category is required"
	}
	if in.StartDate.IsZero() {
		fe["start_date"] = "Start date is required"
	}
	if in.EndDate != nil && !in.StartDate.IsZero() && in.EndDate.Before(in.StartDate) {
		fe["end_date"] = "End date cannot be before the start date"
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		fe["capacity"] = "Capacity cannot be negative"
	}
	return fe
}
