package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

func render(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/views/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body: %v", err)
	}
	return rec.Code, body
}

func TestUnauthorizedCarriesLoginRedirect(t *testing.T) {
	code, body := render(t, domain.ErrUnauthorized)
	if code != http.StatusUnauthorized {
		t.Fatalf("code = %d", code)
	}
	if body.Redirect != "/login" {
		t.Fatalf("redirect = %q, want /login", body.Redirect)
	}
}

func TestFieldErrorsKeepPerFieldMessages(t *testing.T) {
	code, body := render(t, domain.FieldErrors{
		"first_name": "First name is required",
		"gender":     "Gender must be one of M, F, O",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d", code)
	}
	if body.Fields["first_name"] == "" || body.Fields["gender"] == "" {
		t.Fatalf("fields = %v", body.Fields)
	}
}

func TestDomainErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNoCategories, http.StatusConflict},
		{domain.ErrNoClients, http.StatusConflict},
		{domain.ErrNoPrograms, http.StatusConflict},
		{domain.ErrUpstreamDown, http.StatusBadGateway},
	}
	for _, tt := range tests {
		if code, _ := render(t, tt.err); code != tt.code {
			t.Errorf("%v → %d, want %d", tt.err, code, tt.code)
		}
	}
}

func TestUnexpectedErrorIsOpaque(t *testing.T) {
	code, body := render(t, errors.New("pq: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d", code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("error = %q, internal detail must not leak", body.Error)
	}
}

type upstreamRejection struct{ msg string }

func (e upstreamRejection) Error() string   { return e.msg }
func (e upstreamRejection) HTTPStatus() int { return http.StatusBadRequest }

func TestUpstreamRejectionPassesThrough(t *testing.T) {
	code, body := render(t, upstreamRejection{msg: "Client is already enrolled in this program"})
	if code != http.StatusConflict {
		t.Fatalf("code = %d", code)
	}
	if body.Error != "Client is already enrolled in this program" {
		t.Fatalf("error = %q", body.Error)
	}
}
