package domain

import "context"

// UserRow represents a stored credential. The password is opaque and
// compared by equality in the Logic layer.
type UserRow struct {
	Username string
	Password string
}

// UserRepository defines the data-access contract for the credential
// registry. Implementations live in internal/core/repository (Core
// layer). The Logic layer depends on this interface only.
type UserRepository interface {
	// GetByUsername returns the credential matching the given username.
	// Returns (nil, nil) when no user is found.
	GetByUsername(ctx context.Context, username string) (*UserRow, error)

	// Exists returns true when a user with the given username is
	// already registered. Lookups are case-sensitive.
	Exists(ctx context.Context, username string) (bool, error)

	// Create appends a new credential. Callers are expected to check
	// Exists first; Create does not overwrite.
	Create(ctx context.Context, username, password string) error
}
