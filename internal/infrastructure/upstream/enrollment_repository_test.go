package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

func TestEnrollPostsDocumentedFieldNames(t *testing.T) {
	var captured map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/csrf-token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "tok"})
	})
	mux.HandleFunc("/enrollments/enroll_client/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":55,"client":"c-1","program":4,"is_active":true}`))
	})

	c, _ := newTestClient(t, mux)
	repo := NewEnrollmentRepository(c)

	got, err := repo.Enroll(context.Background(), ports.EnrollPayload{
		ClientID:       "c-1",
		ProgramID:      4,
		EnrollmentDate: "2026-02-01",
		FacilityName:   "Kisumu County Referral",
		MFLCode:        "13023",
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if got.ID != 55 || !got.IsActive {
		t.Fatalf("decoded = %+v", got)
	}

	for key, want := range map[string]any{
		"client_id":       "c-1",
		"program_id":      float64(4),
		"enrollment_date": "2026-02-01",
		"facility_name":   "Kisumu County Referral",
		"mfl_code":        "13023",
	} {
		if captured[key] != want {
			t.Errorf("body[%q] = %v, want %v", key, captured[key], want)
		}
	}
}

func TestToggleActiveDecodesActionResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/csrf-token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "tok"})
	})
	mux.HandleFunc("/enrollments/31/toggle_active/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","is_active":false}`))
	})

	c, _ := newTestClient(t, mux)
	repo := NewEnrollmentRepository(c)

	active, err := repo.ToggleActive(context.Background(), 31)
	if err != nil {
		t.Fatal(err)
	}
	if active {
		t.Fatal("is_active should decode as false")
	}
}
