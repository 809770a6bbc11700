package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duynhne/bookstore-service/internal/core/domain"
)

// MemSessionStore implements domain.SessionStore over an in-memory map
// keyed by server-generated session IDs. Sessions vanish on restart,
// which is the intended lifetime.
type MemSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates an empty MemSessionStore.
func NewSessionStore() *MemSessionStore {
	return &MemSessionStore{sessions: make(map[string]domain.Session)}
}

// Create stores a new session for the given user with a fresh ID.
func (r *MemSessionStore) Create(ctx context.Context, username, token string, expiresAt time.Time) (*domain.Session, error) {
	session := domain.Session{
		ID:        uuid.NewString(),
		Username:  username,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session

	return &session, nil
}

// Get looks up a session by ID.
// Returns (nil, nil) when the ID does not match any session.
func (r *MemSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// Expire removes the session with the given ID.
func (r *MemSessionStore) Expire(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
