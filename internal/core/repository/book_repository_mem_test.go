package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/bookstore-service/internal/core/domain"
)

func testCatalog() []domain.BookRecord {
	return []domain.BookRecord{
		{ISBN: "1", Author: "Chinua Achebe", Title: "Things Fall Apart"},
		{ISBN: "8", Author: "Jane Austen", Title: "Pride and Prejudice"},
	}
}

func TestGetByISBN(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	book, err := repo.GetByISBN(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Things Fall Apart", book.Title)
	assert.NotNil(t, book.Reviews)

	missing, err := repo.GetByISBN(ctx, "999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByAuthor_CaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	books, err := repo.FindByAuthor(ctx, "jane austen")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "8", books[0].ISBN)

	none, err := repo.FindByAuthor(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByTitle_CaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	books, err := repo.FindByTitle(ctx, "PRIDE AND PREJUDICE")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Jane Austen", books[0].Author)
}

func TestUpsertReview_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	for i := 0; i < 2; i++ {
		found, err := repo.UpsertReview(ctx, "1", "alice", "great read")
		require.NoError(t, err)
		require.True(t, found)
	}

	reviews, err := repo.Reviews(ctx, "1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "great read", reviews["alice"])
}

func TestUpsertReview_Overwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	_, err := repo.UpsertReview(ctx, "1", "alice", "first take")
	require.NoError(t, err)
	_, err = repo.UpsertReview(ctx, "1", "alice", "second take")
	require.NoError(t, err)

	reviews, err := repo.Reviews(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "second take"}, reviews)
}

func TestUpsertReview_UnknownISBN(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	found, err := repo.UpsertReview(ctx, "999", "alice", "lost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteReview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	_, err := repo.UpsertReview(ctx, "1", "alice", "great read")
	require.NoError(t, err)

	found, err := repo.DeleteReview(ctx, "1", "alice")
	require.NoError(t, err)
	assert.True(t, found)

	reviews, err := repo.Reviews(ctx, "1")
	require.NoError(t, err)
	assert.NotContains(t, reviews, "alice")

	// Second delete: final state is the same, but the entry is gone.
	found, err = repo.DeleteReview(ctx, "1", "alice")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = repo.DeleteReview(ctx, "999", "alice")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReviews_Snapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	_, err := repo.UpsertReview(ctx, "1", "alice", "great read")
	require.NoError(t, err)

	reviews, err := repo.Reviews(ctx, "1")
	require.NoError(t, err)
	reviews["mallory"] = "injected"

	fresh, err := repo.Reviews(ctx, "1")
	require.NoError(t, err)
	assert.NotContains(t, fresh, "mallory")
}

func TestConcurrentUpserts_NoLostUpdates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewBookRepository(testCatalog())

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", i)
			_, err := repo.UpsertReview(ctx, "1", user, "concurrent review")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	reviews, err := repo.Reviews(ctx, "1")
	require.NoError(t, err)
	require.Len(t, reviews, writers)
	for i := 0; i < writers; i++ {
		assert.Contains(t, reviews, fmt.Sprintf("user-%d", i))
	}
}
