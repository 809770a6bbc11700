package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/bookstore-service/internal/core/domain"
	"github.com/duynhne/bookstore-service/middleware"
)

// CatalogService serves read-only catalog queries.
type CatalogService struct {
	books domain.BookRepository
}

// NewCatalogService creates a new CatalogService backed by the given
// catalog.
func NewCatalogService(books domain.BookRepository) *CatalogService {
	return &CatalogService{books: books}
}

// List returns the full catalog keyed by ISBN.
func (s *CatalogService) List(ctx context.Context) (map[string]domain.BookRecord, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	books, err := s.books.All(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list books: %w", err)
	}

	span.SetAttributes(attribute.Int("books.count", len(books)))
	return books, nil
}

// GetByISBN returns a single book.
func (s *CatalogService) GetByISBN(ctx context.Context, isbn string) (*domain.BookRecord, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.get_by_isbn", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query book %q: %w", isbn, err)
	}
	if book == nil {
		return nil, fmt.Errorf("get book %q: %w", isbn, ErrBookNotFound)
	}

	return book, nil
}

// ByAuthor returns all books by the given author, matched
// case-insensitively.
func (s *CatalogService) ByAuthor(ctx context.Context, author string) ([]domain.BookRecord, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.by_author", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.author", author),
	))
	defer span.End()

	books, err := s.books.FindByAuthor(ctx, author)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query books by author %q: %w", author, err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("find books by author %q: %w", author, ErrNoBooksForAuthor)
	}

	return books, nil
}

// ByTitle returns all books with the given title, matched
// case-insensitively.
func (s *CatalogService) ByTitle(ctx context.Context, title string) ([]domain.BookRecord, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.by_title", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.title", title),
	))
	defer span.End()

	books, err := s.books.FindByTitle(ctx, title)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query books by title %q: %w", title, err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("find books by title %q: %w", title, ErrNoBooksForTitle)
	}

	return books, nil
}
