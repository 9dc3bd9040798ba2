package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

type stubClientRepo struct {
	clients     []domain.Client
	enrollments []domain.Enrollment
	listErr     error

	created    *ports.ClientPayload
	updated    *ports.ClientPayload
	updatedID  domain.ClientID
	registered *ports.ClientPayload
	deletedID  domain.ClientID
}

func (r *stubClientRepo) List(context.Context, ports.ClientFilter) ([]domain.Client, error) {
	return r.clients, r.listErr
}

func (r *stubClientRepo) Get(_ context.Context, id domain.ClientID) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubClientRepo) Create(_ context.Context, p ports.ClientPayload) (*domain.Client, error) {
	r.created = &p
	return &domain.Client{ID: "new-1", FirstName: p.FirstName, LastName: p.LastName}, nil
}

func (r *stubClientRepo) Update(_ context.Context, id domain.ClientID, p ports.ClientPayload) (*domain.Client, error) {
	r.updated = &p
	r.updatedID = id
	return &domain.Client{ID: id, FirstName: p.FirstName, LastName: p.LastName}, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id domain.ClientID) error {
	r.deletedID = id
	return nil
}

func (r *stubClientRepo) Search(context.Context, string) ([]domain.Client, error) {
	return r.clients, nil
}

func (r *stubClientRepo) Enrollments(context.Context, domain.ClientID) ([]domain.Enrollment, error) {
	return r.enrollments, nil
}

func (r *stubClientRepo) Register(_ context.Context, p ports.ClientPayload) (*domain.Client, error) {
	r.registered = &p
	return &domain.Client{ID: "self-1", FirstName: p.FirstName}, nil
}

func validSaveClientInput() ports.SaveClientInput {
	return ports.SaveClientInput{
		FirstName:   "Amina",
		LastName:    "Odhiambo",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "F",
		County:      "Kisumu",
		SubCounty:   "Kisumu East",
	}
}

func TestClientListFacetsFilterAndPaginate(t *testing.T) {
	repo := &stubClientRepo{clients: []domain.Client{
		{ID: "1", FirstName: "Amina", LastName: "Odhiambo", County: "Kisumu"},
		{ID: "2", FirstName: "Brian", LastName: "Mwangi", County: "Nairobi"},
		{ID: "3", FirstName: "Carol", LastName: "Mwangi", County: "Nairobi"},
		{ID: "4", FirstName: "David", LastName: "Kiptoo", County: "Kericho"},
	}}
	svc := NewClientService(repo, zerolog.Nop())

	view, err := svc.List(context.Background(), ports.ClientListInput{Query: "mwangi", PageSize: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if view.Total != 2 {
		t.Fatalf("total = %d, want 2", view.Total)
	}
	if len(view.Items) != 1 {
		t.Fatalf("page window = %d rows, want 1", len(view.Items))
	}
	// Facet reflects the whole collection, not the filtered rows.
	wantCounties := []string{"Kericho", "Kisumu", "Nairobi"}
	if len(view.Counties) != len(wantCounties) {
		t.Fatalf("counties = %v, want %v", view.Counties, wantCounties)
	}
	for i := range wantCounties {
		if view.Counties[i] != wantCounties[i] {
			t.Fatalf("counties = %v, want %v", view.Counties, wantCounties)
		}
	}
}

func TestClientListCountyFilter(t *testing.T) {
	repo := &stubClientRepo{clients: []domain.Client{
		{ID: "1", County: "Kisumu"},
		{ID: "2", County: "Nairobi"},
	}}
	svc := NewClientService(repo, zerolog.Nop())

	view, err := svc.List(context.Background(), ports.ClientListInput{County: "Nairobi"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Total != 1 || view.Items[0].ID != "2" {
		t.Fatalf("view = %+v", view)
	}
}

func TestSaveClientCreateFormatsDate(t *testing.T) {
	repo := &stubClientRepo{}
	svc := NewClientService(repo, zerolog.Nop())

	res, err := svc.Save(context.Background(), validSaveClientInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.created == nil {
		t.Fatal("create was not called")
	}
	if repo.created.DateOfBirth != "1990-04-12" {
		t.Fatalf("date_of_birth = %q, want 1990-04-12", repo.created.DateOfBirth)
	}
	if res.RedirectTo != "/views/clients" {
		t.Fatalf("redirect = %q", res.RedirectTo)
	}
}

func TestSaveClientUpdateMode(t *testing.T) {
	repo := &stubClientRepo{}
	svc := NewClientService(repo, zerolog.Nop())

	in := validSaveClientInput()
	in.ID = "c-77"
	in.Origin = "c-77"
	res, err := svc.Save(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if repo.updated == nil || repo.updatedID != "c-77" {
		t.Fatalf("update call: payload=%v id=%s", repo.updated, repo.updatedID)
	}
	if repo.created != nil {
		t.Fatal("create must not run in update mode")
	}
	if res.RedirectTo != "/views/clients/c-77" {
		t.Fatalf("redirect = %q, want profile", res.RedirectTo)
	}
}

func TestSaveClientValidationBlocksNetwork(t *testing.T) {
	repo := &stubClientRepo{}
	svc := NewClientService(repo, zerolog.Nop())

	in := validSaveClientInput()
	in.FirstName = ""
	in.Gender = "X"
	in.DateOfBirth = time.Now().Add(48 * time.Hour)

	_, err := svc.Save(context.Background(), in)
	fe, ok := domain.AsFieldErrors(err)
	if !ok {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	for _, field := range []string{"first_name", "gender", "date_of_birth"} {
		if fe[field] == "" {
			t.Errorf("missing message for %s in %v", field, fe)
		}
	}
	if repo.created != nil || repo.updated != nil {
		t.Fatal("repository must not be called on validation failure")
	}
}

func TestRegisterUsesRegistrationAction(t *testing.T) {
	repo := &stubClientRepo{}
	svc := NewClientService(repo, zerolog.Nop())

	res, err := svc.Register(context.Background(), validSaveClientInput())
	if err != nil {
		t.Fatal(err)
	}
	if repo.registered == nil {
		t.Fatal("register action was not called")
	}
	if repo.created != nil {
		t.Fatal("generic create must not be used for self-registration")
	}
	if res.RedirectTo != "/login" {
		t.Fatalf("redirect = %q", res.RedirectTo)
	}
}

func TestClientProfileJoinsEnrollments(t *testing.T) {
	repo := &stubClientRepo{
		clients:     []domain.Client{{ID: "c-1", FirstName: "Amina"}},
		enrollments: []domain.Enrollment{{ID: 10, ProgramName: "TB Care"}},
	}
	svc := NewClientService(repo, zerolog.Nop())

	profile, err := svc.Profile(context.Background(), "c-1")
	if err != nil {
		t.Fatal(err)
	}
	if profile.Client.ID != "c-1" || len(profile.Enrollments) != 1 {
		t.Fatalf("profile = %+v", profile)
	}
}
