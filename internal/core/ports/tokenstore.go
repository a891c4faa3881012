package ports

// TokenStore persists the session token between runs. Load returns an empty
// string when no token is stored. Any write must be paired with a matching
// session-state transition by the caller.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
