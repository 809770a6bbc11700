package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewSessionStore()

	expiresAt := time.Now().Add(time.Hour)
	session, err := store.Create(ctx, "alice", "token-1", expiresAt)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "token-1", session.Token)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.Username, got.Username)
	assert.Equal(t, session.Token, got.Token)
	assert.WithinDuration(t, expiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_UniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewSessionStore()

	a, err := store.Create(ctx, "alice", "t1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	b, err := store.Create(ctx, "alice", "t2", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionStore_GetUnknown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewSessionStore()

	got, err := store.Get(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Expire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewSessionStore()

	session, err := store.Create(ctx, "alice", "t", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, store.Expire(ctx, session.ID))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Expiring an unknown id is not an error.
	require.NoError(t, store.Expire(ctx, "no-such-id"))
}

func TestSession_Expired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewSessionStore()

	session, err := store.Create(ctx, "alice", "t", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Expired(time.Now()))
}
