// Package middleware holds the gateway's request middleware.
package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// RequireSession gates case-work routes behind an authenticated session.
// The session is resolved lazily on the first guarded request, so a restart
// restores the mirrored identity before rejecting anyone.
func RequireSession(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessions.Resolve(c.Request().Context())
			if !sess.Authenticated() {
				// Surfaced with the sign-in redirect by the error handler.
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
