package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Fields
// carries per-field validation messages when the failure is form-shaped;
// Redirect tells the caller where to navigate (the sign-in page on 401).
type errorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders field-level validation failures with their per-field messages.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Form-shaped failures keep their per-field messages.
	if fe, ok := domain.AsFieldErrors(err); ok {
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fe}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "authentication required", Redirect: "/login"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "record not found"}
	case errors.Is(err, domain.ErrNoCategories):
		return http.StatusConflict, errorResponse{Error: "create a program category before adding programs"}
	case errors.Is(err, domain.ErrNoClients):
		return http.StatusConflict, errorResponse{Error: "register a client before recording enrollments"}
	case errors.Is(err, domain.ErrNoPrograms):
		return http.StatusConflict, errorResponse{Error: "create a program before recording enrollments"}
	case errors.Is(err, domain.ErrUpstreamDown):
		return http.StatusBadGateway, errorResponse{Error: "registry unreachable, try again shortly"}
	}

	// Upstream 4xx messages are user-facing (duplicate enrollment and the
	// like); pass them through as a plain conflict.
	if msg := err.Error(); msg != "" && isUpstreamRejection(err) {
		return http.StatusConflict, errorResponse{Error: msg}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// statusCoder is implemented by upstream response errors.
type statusCoder interface {
	HTTPStatus() int
}

func isUpstreamRejection(err error) bool {
	var sc statusCoder
	if !errors.As(err, &sc) {
		return false
	}
	code := sc.HTTPStatus()
	return code >= 400 && code < 500
}
