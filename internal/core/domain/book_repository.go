package domain

import "context"

// BookRecord is a single catalog entry. The ISBN is the externally
// assigned, immutable key; Reviews maps a username to that user's
// review text (at most one review per user per book).
type BookRecord struct {
	ISBN    string            `json:"isbn"`
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Reviews map[string]string `json:"reviews"`
}

// BookRepository defines the data-access contract for the book catalog.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on the backing
// store directly.
//
// All read methods return snapshots: callers may mutate the returned
// maps/slices without affecting the store.
type BookRepository interface {
	// All returns the full catalog keyed by ISBN.
	All(ctx context.Context) (map[string]BookRecord, error)

	// GetByISBN returns the book with the given ISBN.
	// Returns (nil, nil) when no book is found.
	GetByISBN(ctx context.Context, isbn string) (*BookRecord, error)

	// FindByAuthor returns all books whose author matches,
	// case-insensitively.
	FindByAuthor(ctx context.Context, author string) ([]BookRecord, error)

	// FindByTitle returns all books whose title matches,
	// case-insensitively.
	FindByTitle(ctx context.Context, title string) ([]BookRecord, error)

	// Reviews returns the review mapping for the given ISBN.
	// Returns (nil, nil) when no book is found.
	Reviews(ctx context.Context, isbn string) (map[string]string, error)

	// UpsertReview sets the acting user's review for the given ISBN,
	// overwriting any prior review by the same user. The returned bool
	// is false when the ISBN is not in the catalog.
	UpsertReview(ctx context.Context, isbn, username, review string) (bool, error)

	// DeleteReview removes the acting user's review for the given ISBN.
	// The returned bool is false when the ISBN is unknown or the user
	// has no review for it.
	DeleteReview(ctx context.Context, isbn, username string) (bool, error)
}
