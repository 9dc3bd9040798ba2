// Package service holds the gateway's application services: the session
// state machine and the form/list controllers backed by the registry
// repositories.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/api/metrics"
	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

const mirrorTimeout = 3 * time.Second

// SessionService owns the session state machine and the durable mirror.
// It also serves as the upstream client's credential source.
type SessionService struct {
	auth  ports.AuthRepository
	store ports.SessionStore
	log   zerolog.Logger

	resolveOnce sync.Once

	mu    sync.Mutex
	state domain.SessionState
	user  *domain.User
	token string
}

func NewSessionService(auth ports.AuthRepository, store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		auth:  auth,
		store: store,
		log:   log,
		state: domain.SessionUnresolved,
	}
}

// Current returns the present snapshot without any network activity.
func (s *SessionService) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Resolve runs the startup probe exactly once: restore the mirror
// optimistically, then let the registry confirm or override it. Later calls
// return the current snapshot.
func (s *SessionService) Resolve(ctx context.Context) domain.Session {
	s.resolveOnce.Do(func() {
		restored := s.restoreMirror(ctx)
		s.probe(ctx, restored)
	})
	return s.Current()
}

// restoreMirror loads the durable record and, when it claims an authenticated
// session, adopts it provisionally. Reports whether anything was restored.
func (s *SessionService) restoreMirror(ctx context.Context) bool {
	rec, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session mirror load failed")
		return false
	}
	if rec == nil || !rec.Authenticated || rec.Token == "" {
		return false
	}

	s.mu.Lock()
	s.user = rec.User
	s.token = rec.Token
	s.setStateLocked(domain.SessionAuthenticated)
	s.mu.Unlock()

	s.log.Info().Msg("session restored from mirror, pending confirmation")
	return true
}

// probe asks the registry who is signed in and applies the answer. When the
// registry is unreachable the mirror-derived state stands; without a mirror
// the session falls to unauthenticated.
func (s *SessionService) probe(ctx context.Context, restored bool) {
	user, err := s.auth.CurrentUser(ctx)
	switch {
	case err == nil:
		s.adoptUser(ctx, user)
	case errors.Is(err, domain.ErrUnauthorized):
		s.dropSession(ctx)
	default:
		s.log.Warn().Err(err).Msg("session probe inconclusive")
		if !restored {
			s.mu.Lock()
			s.setStateLocked(domain.SessionUnauthenticated)
			s.mu.Unlock()
		}
	}
}

// Login exchanges credentials for an authenticated session.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	s.mu.Lock()
	s.setStateLocked(domain.SessionAuthenticating)
	s.mu.Unlock()

	res, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.token = ""
		s.setStateLocked(domain.SessionUnauthenticated)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}

	s.mu.Lock()
	s.user = res.User
	s.token = res.Token
	s.setStateLocked(domain.SessionAuthenticated)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.saveMirror(ctx)
	s.log.Info().Str("username", username).Msg("signed in")
	return snap, nil
}

// Logout always lands in unauthenticated locally; the upstream invalidation
// is best effort.
func (s *SessionService) Logout(ctx context.Context) domain.Session {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("upstream logout failed, discarding session anyway")
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.setStateLocked(domain.SessionUnauthenticated)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.clearMirror(ctx)
	return snap
}

// CheckAuth re-probes the registry. It can move the state in either
// direction; an unreachable registry leaves the state untouched.
func (s *SessionService) CheckAuth(ctx context.Context) domain.Session {
	user, err := s.auth.CurrentUser(ctx)
	switch {
	case err == nil:
		s.adoptUser(ctx, user)
	case errors.Is(err, domain.ErrUnauthorized):
		s.dropSession(ctx)
	default:
		s.log.Warn().Err(err).Msg("auth check inconclusive")
	}
	return s.Current()
}

// Token returns the credential to attach to registry requests, or "".
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Invalidate is the unauthorized hook. The state guard makes it act exactly
// once per authenticated session no matter how many concurrent rejections
// report in.
func (s *SessionService) Invalidate() {
	s.mu.Lock()
	if s.state != domain.SessionAuthenticated {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.token = ""
	s.setStateLocked(domain.SessionUnauthenticated)
	s.mu.Unlock()

	metrics.SessionInvalidationsTotal.Inc()
	s.log.Info().Msg("session invalidated by unauthorized response")

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	s.clearMirror(ctx)
}

// adoptUser applies a confirmed identity.
func (s *SessionService) adoptUser(ctx context.Context, user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.setStateLocked(domain.SessionAuthenticated)
	s.mu.Unlock()
	s.saveMirror(ctx)
}

// dropSession applies a confirmed signed-out answer.
func (s *SessionService) dropSession(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.setStateLocked(domain.SessionUnauthenticated)
	s.mu.Unlock()
	s.clearMirror(ctx)
}

func (s *SessionService) saveMirror(ctx context.Context) {
	s.mu.Lock()
	rec := domain.SessionRecord{
		Authenticated: s.state == domain.SessionAuthenticated,
		User:          s.user,
		Token:         s.token,
	}
	s.mu.Unlock()

	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Warn().Err(err).Msg("session mirror save failed")
	}
}

func (s *SessionService) clearMirror(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session mirror clear failed")
	}
}

// setStateLocked transitions the state machine; the caller holds s.mu.
func (s *SessionService) setStateLocked(next domain.SessionState) {
	if s.state == next {
		return
	}
	s.state = next
	metrics.SessionTransitionsTotal.WithLabelValues(string(next)).Inc()
}

func (s *SessionService) snapshotLocked() domain.Session {
	return domain.Session{State: s.state, User: s.user}
}
