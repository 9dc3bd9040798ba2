package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

type stubSessions struct {
	session  domain.Session
	resolves int
}

func (s *stubSessions) Current() domain.Session { return s.session }

func (s *stubSessions) Resolve(context.Context) domain.Session {
	s.resolves++
	return s.session
}

func (s *stubSessions) Login(context.Context, string, string) (domain.Session, error) {
	return s.session, nil
}

func (s *stubSessions) Logout(context.Context) domain.Session    { return s.session }
func (s *stubSessions) CheckAuth(context.Context) domain.Session { return s.session }
func (s *stubSessions) Token() string                            { return "" }
func (s *stubSessions) Invalidate()                              {}

func invoke(t *testing.T, mw echo.MiddlewareFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/views/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return mw(next)(c)
}

func TestRequireSessionRejectsUnauthenticated(t *testing.T) {
	sessions := &stubSessions{session: domain.Session{State: domain.SessionUnauthenticated}}
	err := invoke(t, RequireSession(sessions))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if sessions.resolves != 1 {
		t.Fatalf("resolves = %d, want 1 (gate must resolve the session)", sessions.resolves)
	}
}

func TestRequireSessionPassesAuthenticated(t *testing.T) {
	sessions := &stubSessions{session: domain.Session{
		State: domain.SessionAuthenticated,
		User:  &domain.User{ID: 1, Username: "chw"},
	}}
	if err := invoke(t, RequireSession(sessions)); err != nil {
		t.Fatalf("authenticated request should pass: %v", err)
	}
}
