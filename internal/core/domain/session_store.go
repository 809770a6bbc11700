package domain

import (
	"context"
	"time"
)

// Session is the server-side state bound to a client's cookie. The
// cookie carries only the session ID; the signed login token lives
// here, inside the session it was minted for.
type Session struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session's absolute lifetime has lapsed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionStore defines the contract for server-side session state.
// Implementations live in internal/core/repository (Core layer).
// Sessions do not survive a process restart.
type SessionStore interface {
	// Create stores a new session for the given user with a
	// server-generated ID and the given absolute expiry.
	Create(ctx context.Context, username, token string, expiresAt time.Time) (*Session, error)

	// Get looks up a session by ID.
	// Returns (nil, nil) when the ID does not match any session.
	// Expiry is the caller's concern: expired sessions are returned
	// as-is until Expire removes them.
	Get(ctx context.Context, id string) (*Session, error)

	// Expire removes the session with the given ID. Expiring an
	// unknown ID is not an error.
	Expire(ctx context.Context, id string) error
}
