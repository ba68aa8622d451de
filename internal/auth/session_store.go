package auth

import (
	"context"
	"errors"
)

// SessionStore persists login sessions keyed by opaque token.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)

	// Resolve returns the user ID behind the token, or
	// ErrSessionNotFound when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (string, error)

	Delete(ctx context.Context, token string) error
}

var ErrSessionNotFound = errors.New("session not found")
