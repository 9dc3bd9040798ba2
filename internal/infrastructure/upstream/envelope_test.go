package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

func TestCollectBareArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/programs/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Malaria Net"},{"id":2,"name":"TB Care"}]`))
	})

	c, _ := newTestClient(t, mux)
	got, err := collect[domain.Program](context.Background(), c, "/programs/", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].Name != "TB Care" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestCollectFollowsContinuationLinks(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/clients/", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			json.NewEncoder(w).Encode(map[string]any{
				"count":   3,
				"next":    srv.URL + "/clients/?page=2",
				"results": []map[string]any{{"client_id": "a"}, {"client_id": "b"}},
			})
		case "2":
			json.NewEncoder(w).Encode(map[string]any{
				"count":   3,
				"next":    nil,
				"results": []map[string]any{{"client_id": "c"}},
			})
		default:
			t.Errorf("unexpected page %q", page)
		}
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0, zerolog.Nop())
	got, err := collect[domain.Client](context.Background(), c, "/clients/", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2].ID != "c" {
		t.Fatalf("last client = %q, want c", got[2].ID)
	}
}

func TestCollectEmptyEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/enrollments/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"next":null,"previous":null,"results":[]}`))
	})

	c, _ := newTestClient(t, mux)
	got, err := collect[domain.Enrollment](context.Background(), c, "/enrollments/", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestCollectStopsAtPageCap(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/clients/", func(w http.ResponseWriter, r *http.Request) {
		// Always point at another page.
		fmt.Fprintf(w, `{"count":1000,"next":%q,"results":[{"client_id":"x"}]}`, srv.URL+"/clients/?page=next")
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0, zerolog.Nop())
	if _, err := collect[domain.Client](context.Background(), c, "/clients/", nil); err == nil {
		t.Fatal("expected error when continuation links never terminate")
	}
}
