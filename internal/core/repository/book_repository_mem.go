package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/duynhne/bookstore-service/internal/core/domain"
)

// MemBookRepository implements domain.BookRepository over an in-memory
// map. A single RWMutex guards the catalog: contention is low, review
// mutations are single critical sections, and readers always see a
// consistent snapshot.
type MemBookRepository struct {
	mu    sync.RWMutex
	books map[string]domain.BookRecord
}

// NewBookRepository creates a MemBookRepository pre-populated with the
// given catalog. Records with a nil review map get an empty one.
func NewBookRepository(seed []domain.BookRecord) *MemBookRepository {
	books := make(map[string]domain.BookRecord, len(seed))
	for _, b := range seed {
		if b.Reviews == nil {
			b.Reviews = make(map[string]string)
		}
		books[b.ISBN] = b
	}
	return &MemBookRepository{books: books}
}

// All returns the full catalog keyed by ISBN.
func (r *MemBookRepository) All(ctx context.Context) (map[string]domain.BookRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.BookRecord, len(r.books))
	for isbn, b := range r.books {
		out[isbn] = copyRecord(b)
	}
	return out, nil
}

// GetByISBN returns the book with the given ISBN.
// Returns (nil, nil) when no book is found.
func (r *MemBookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.BookRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return nil, nil
	}
	out := copyRecord(b)
	return &out, nil
}

// FindByAuthor returns all books whose author matches, case-insensitively.
func (r *MemBookRepository) FindByAuthor(ctx context.Context, author string) ([]domain.BookRecord, error) {
	return r.find(func(b domain.BookRecord) bool {
		return strings.EqualFold(b.Author, author)
	}), nil
}

// FindByTitle returns all books whose title matches, case-insensitively.
func (r *MemBookRepository) FindByTitle(ctx context.Context, title string) ([]domain.BookRecord, error) {
	return r.find(func(b domain.BookRecord) bool {
		return strings.EqualFold(b.Title, title)
	}), nil
}

// Reviews returns the review mapping for the given ISBN.
// Returns (nil, nil) when no book is found.
func (r *MemBookRepository) Reviews(ctx context.Context, isbn string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return nil, nil
	}
	return copyReviews(b.Reviews), nil
}

// UpsertReview sets the acting user's review for the given ISBN,
// overwriting any prior review by the same user. The returned bool is
// false when the ISBN is not in the catalog.
func (r *MemBookRepository) UpsertReview(ctx context.Context, isbn, username, review string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return false, nil
	}
	b.Reviews[username] = review
	return true, nil
}

// DeleteReview removes the acting user's review for the given ISBN.
// The returned bool is false when the ISBN is unknown or the user has
// no review for it.
func (r *MemBookRepository) DeleteReview(ctx context.Context, isbn, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return false, nil
	}
	if _, ok := b.Reviews[username]; !ok {
		return false, nil
	}
	delete(b.Reviews, username)
	return true, nil
}

func (r *MemBookRepository) find(match func(domain.BookRecord) bool) []domain.BookRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.BookRecord
	for _, b := range r.books {
		if match(b) {
			out = append(out, copyRecord(b))
		}
	}
	return out
}

func copyRecord(b domain.BookRecord) domain.BookRecord {
	b.Reviews = copyReviews(b.Reviews)
	return b
}

func copyReviews(reviews map[string]string) map[string]string {
	out := make(map[string]string, len(reviews))
	for user, text := range reviews {
		out[user] = text
	}
	return out
}
