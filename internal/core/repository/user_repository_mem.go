package repository

import (
	"context"
	"sync"

	"github.com/duynhne/bookstore-service/internal/core/domain"
)

// MemUserRepository implements domain.UserRepository over an in-memory
// map. The registry is append-only: credentials are never updated or
// removed once created.
type MemUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.UserRow
}

// NewUserRepository creates an empty MemUserRepository.
func NewUserRepository() *MemUserRepository {
	return &MemUserRepository{users: make(map[string]domain.UserRow)}
}

// GetByUsername returns the credential matching the given username.
// Returns (nil, nil) when no user is found.
func (r *MemUserRepository) GetByUsername(ctx context.Context, username string) (*domain.UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// Exists returns true when a user with the given username is already
// registered.
func (r *MemUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[username]
	return ok, nil
}

// Create appends a new credential.
func (r *MemUserRepository) Create(ctx context.Context, username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[username] = domain.UserRow{Username: username, Password: password}
	return nil
}
