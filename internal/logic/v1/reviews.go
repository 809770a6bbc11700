package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/bookstore-service/internal/core/domain"
	"github.com/duynhne/bookstore-service/middleware"
)

// ReviewService applies review mutations for authenticated users
// against the shared catalog.
type ReviewService struct {
	books domain.BookRepository
}

// NewReviewService creates a new ReviewService backed by the given
// catalog.
func NewReviewService(books domain.BookRepository) *ReviewService {
	return &ReviewService{books: books}
}

// Reviews returns the full review mapping for a book.
func (s *ReviewService) Reviews(ctx context.Context, isbn string) (map[string]string, error) {
	ctx, span := middleware.StartSpan(ctx, "reviews.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	reviews, err := s.books.Reviews(ctx, isbn)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query reviews for %q: %w", isbn, err)
	}
	if reviews == nil {
		return nil, fmt.Errorf("get reviews for %q: %w", isbn, ErrBookNotFound)
	}

	span.SetAttributes(attribute.Int("reviews.count", len(reviews)))
	return reviews, nil
}

// Upsert sets the acting user's review for a book, overwriting any
// prior review by the same user. Repeated calls with the same text are
// idempotent.
func (s *ReviewService) Upsert(ctx context.Context, username, isbn, review string) error {
	ctx, span := middleware.StartSpan(ctx, "reviews.upsert", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	if username == "" {
		return fmt.Errorf("upsert review for %q: %w", isbn, ErrLoginRequired)
	}

	found, err := s.books.UpsertReview(ctx, isbn, username, review)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("upsert review for %q: %w", isbn, err)
	}
	if !found {
		return fmt.Errorf("upsert review for %q: %w", isbn, ErrBookNotFound)
	}

	span.AddEvent("review.upserted")
	return nil
}

// Delete removes the acting user's review for a book. Unknown ISBNs
// and missing reviews collapse to the same not-found result.
func (s *ReviewService) Delete(ctx context.Context, username, isbn string) error {
	ctx, span := middleware.StartSpan(ctx, "reviews.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	if username == "" {
		return fmt.Errorf("delete review for %q: %w", isbn, ErrLoginRequired)
	}

	found, err := s.books.DeleteReview(ctx, isbn, username)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete review for %q: %w", isbn, err)
	}
	if !found {
		return fmt.Errorf("delete review for %q: %w", isbn, ErrReviewNotFound)
	}

	span.AddEvent("review.deleted")
	return nil
}
