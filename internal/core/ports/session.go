package ports

import (
	"context"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

// SessionStore is the durable mirror of the session state. Implementations
// must treat a missing record as (nil, nil), not an error.
type SessionStore interface {
	Load(ctx context.Context) (*domain.SessionRecord, error)
	Save(ctx context.Context, rec domain.SessionRecord) error
	Clear(ctx context.Context) error
}

// LoginResult carries what the upstream login endpoint returns on success.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthRepository talks to the upstream registry's authentication endpoints.
type AuthRepository interface {
	// CSRFToken fetches a fresh anti-forgery token.
	CSRFToken(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	// CurrentUser probes the session; returns domain.ErrUnauthorized when the
	// registry reports no identity.
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// SessionService owns the session state machine:
// Unresolved -> (probe) -> Authenticated | Unauthenticated, with
// login/logout/checkAuth transitions. All methods are safe for concurrent use.
type SessionService interface {
	// Current returns the present snapshot without any network activity.
	Current() domain.Session
	// Resolve runs the one-shot startup probe, optionally restoring the
	// durable mirror first. Idempotent.
	Resolve(ctx context.Context) domain.Session
	Login(ctx context.Context, username, password string) (domain.Session, error)
	// Logout transitions to Unauthenticated locally regardless of whether the
	// best-effort upstream invalidation succeeds.
	Logout(ctx context.Context) domain.Session
	// CheckAuth re-runs the probe; it can move the state in either direction
	// and yields the same state when called twice with no intervening
	// login/logout.
	CheckAuth(ctx context.Context) domain.Session
	// Token returns the credential to attach to upstream requests, or "".
	Token() string
	// Invalidate is the unauthorized hook: it clears the mirror and flips the
	// session to Unauthenticated exactly once per authenticated generation,
	// no matter how many concurrent 401s report it.
	Invalidate()
}
