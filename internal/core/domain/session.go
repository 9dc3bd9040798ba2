package domain

// SessionState is the lifecycle state of the gateway's session with the
// upstream registry.
type SessionState string

const (
	// SessionUnresolved is the initial state before the startup probe completes.
	SessionUnresolved SessionState = "unresolved"
	// SessionAuthenticating is entered while a login call is in flight.
	SessionAuthenticating  SessionState = "authenticating"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

// User is the identity record returned by the upstream current-user endpoint.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Name      string `json:"name,omitempty"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// Session is an immutable snapshot of the session state machine.
// User is non-nil iff State is SessionAuthenticated.
type Session struct {
	State SessionState `json:"state"`
	User  *User        `json:"user,omitempty"`
}

// Authenticated reports whether the snapshot represents a resolved, signed-in
// session.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated
}

// Loading reports whether the session has not been resolved yet (either the
// startup probe or a login is still pending).
func (s Session) Loading() bool {
	return s.State == SessionUnresolved || s.State == SessionAuthenticating
}

// SessionRecord is the durable mirror of an authenticated session. It lets a
// gateway restart restore the last known identity optimistically before the
// upstream probe completes. The mirror is advisory only: the upstream
// registry remains the source of truth and the probe can override it.
type SessionRecord struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user,omitempty"`
	Token         string `json:"token,omitempty"`
}
