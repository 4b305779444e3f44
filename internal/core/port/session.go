package port

import "context"

// SessionStore persists the auth token in device-local storage. Token
// returns an empty string when no session exists.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
