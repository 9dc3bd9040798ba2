package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

type stubSessions struct {
	session  domain.Session
	loginErr error

	loginUser string
	loginPass string
	logouts   int
}

func (s *stubSessions) Current() domain.Session                  { return s.session }
func (s *stubSessions) Resolve(context.Context) domain.Session   { return s.session }
func (s *stubSessions) CheckAuth(context.Context) domain.Session { return s.session }
func (s *stubSessions) Token() string                            { return "" }
func (s *stubSessions) Invalidate()                              {}

func (s *stubSessions) Login(_ context.Context, username, password string) (domain.Session, error) {
	s.loginUser, s.loginPass = username, password
	if s.loginErr != nil {
		return domain.Session{State: domain.SessionUnauthenticated}, s.loginErr
	}
	return s.session, nil
}

func (s *stubSessions) Logout(context.Context) domain.Session {
	s.logouts++
	return domain.Session{State: domain.SessionUnauthenticated}
}

func newSessionContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginReturnsSessionSnapshot(t *testing.T) {
	sessions := &stubSessions{session: domain.Session{
		State: domain.SessionAuthenticated,
		User:  &domain.User{ID: 7, Username: "chw.wanjiku"},
	}}
	h := NewSessionHandler(sessions)

	c, rec := newSessionContext(t, http.MethodPost, "/session/login",
		`{"username":"chw.wanjiku","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if sessions.loginUser != "chw.wanjiku" || sessions.loginPass != "s3cret" {
		t.Fatalf("credentials passed = %q/%q", sessions.loginUser, sessions.loginPass)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Authenticated || resp.User == nil || resp.User.Username != "chw.wanjiku" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestLoginMissingFieldsFailValidation(t *testing.T) {
	h := NewSessionHandler(&stubSessions{})

	c, _ := newSessionContext(t, http.MethodPost, "/session/login", `{"username":"chw"}`)
	err := h.Login(c)
	fe, ok := domain.AsFieldErrors(err)
	if !ok {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if fe["password"] == "" {
		t.Fatalf("fields = %v, want password message", fe)
	}
}

func TestLoginInvalidCredentialsPropagate(t *testing.T) {
	sessions := &stubSessions{loginErr: domain.ErrInvalidCredentials}
	h := NewSessionHandler(sessions)

	c, _ := newSessionContext(t, http.MethodPost, "/session/login",
		`{"username":"chw","password":"wrong"}`)
	if err := h.Login(c); !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("err = %v", err)
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	sessions := &stubSessions{}
	h := NewSessionHandler(sessions)

	c, rec := newSessionContext(t, http.MethodPost, "/session/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatal(err)
	}
	if sessions.logouts != 1 {
		t.Fatalf("logouts = %d", sessions.logouts)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.State != domain.SessionUnauthenticated {
		t.Fatalf("state = %s", resp.State)
	}
}
