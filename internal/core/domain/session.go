package domain

// SessionState is the session keeper's state machine position.
type SessionState int

const (
	StateIdle SessionState = iota
	StateProbing
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateProbing:
		return "probing"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "idle"
	}
}

// Session is the authentication slice of the store. Only Token is ever
// persisted; everything else is derived at bootstrap.
type Session struct {
	State SessionState
	Token string
	User  *User
	Error string
}

// LoggedIn reports whether the session holds an authenticated user.
// A session without a token is never logged in.
func (s Session) LoggedIn() bool {
	return s.State == StateAuthenticated && s.Token != ""
}

// Loading is true while a login, signup or bootstrap probe is in flight.
func (s Session) Loading() bool {
	return s.State == StateAuthenticating || s.State == StateProbing
}
