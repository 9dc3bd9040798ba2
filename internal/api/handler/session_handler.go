package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State         domain.SessionState `json:"state"`
	Authenticated bool                `json:"authenticated"`
	User          *domain.User        `json:"user,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		State:         s.State,
		Authenticated: s.Authenticated(),
		User:          s.User,
	}
}

// Current resolves the session on first call and returns the snapshot.
func (h *SessionHandler) Current(c echo.Context) error {
	sess := h.sessions.Resolve(c.Request().Context())
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Login exchanges credentials for an authenticated session.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Logout discards the session. Always succeeds locally.
func (h *SessionHandler) Logout(c echo.Context) error {
	sess := h.sessions.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Check re-probes the registry and returns the possibly updated snapshot.
func (h *SessionHandler) Check(c echo.Context) error {
	sess := h.sessions.CheckAuth(c.Request().Context())
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}
