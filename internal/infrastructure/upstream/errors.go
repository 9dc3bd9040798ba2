package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// Error is a non-2xx registry response normalised into the gateway's shape.
// Detail carries the single human-readable message when the registry sent
// one; Fields carries per-field validation messages when it sent those.
type Error struct {
	StatusCode int
	Detail     string
	Fields     domain.FieldErrors
}

func (e *Error) Error() string {
	switch {
	case len(e.Fields) > 0:
		return e.Fields.Error()
	case e.Detail != "":
		return e.Detail
	default:
		return fmt.Sprintf("registry responded with status %d", e.StatusCode)
	}
}

// HTTPStatus exposes the registry's response status to the API error
// handler without a package dependency on this type.
func (e *Error) HTTPStatus() int { return e.StatusCode }

// Unwrap maps well-known statuses onto domain sentinels so callers can use
// errors.Is without importing this package's Error type.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// ErrTransport wraps a failure to complete the round trip at all: connection
// refused, timeout, DNS. It reports the registry as unreachable.
type ErrTransport struct {
	Cause error
}

func (e ErrTransport) Error() string {
	return fmt.Sprintf("registry unreachable: %v", e.Cause)
}

func (e ErrTransport) Unwrap() error { return domain.ErrUpstreamDown }

// parseError reads a registry error body. Recognised shapes, in order:
// {"detail": "..."}, {"error": "..."}, and the DRF per-field map where each
// value is a string or a list of strings.
func parseError(status int, body []byte) *Error {
	out := &Error{StatusCode: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return out
	}

	for _, key := range []string{"detail", "error", "message"} {
		if msg, ok := raw[key]; ok {
			var s string
			if json.Unmarshal(msg, &s) == nil && s != "" {
				out.Detail = s
				return out
			}
		}
	}

	fields := domain.FieldErrors{}
	for field, msg := range raw {
		if s := flattenMessage(msg); s != "" {
			fields[field] = s
		}
	}
	if len(fields) > 0 {
		out.Fields = fields
	}
	return out
}

// flattenMessage renders a field's error value, which the registry emits as
// either a string or a list of strings.
func flattenMessage(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, " ")
	}
	return ""
}

// isCSRFRejection reports whether a 403 body names the anti-forgery check.
func isCSRFRejection(body []byte) bool {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(payload.Detail), "csrf")
}

func decodeCSRF(body []byte) (string, error) {
	var payload struct {
		Token string `json:"csrfToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("csrf token decode: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("csrf token decode: empty token")
	}
	return payload.Token, nil
}
