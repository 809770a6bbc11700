// Package v1 provides the bookstore business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent the recoverable
// failure modes of the catalog and auth operations. They should be
// wrapped with context using fmt.Errorf("%w") when returned from
// business logic methods, and mapped to HTTP statuses in the web layer
// with errors.Is.
package v1

import "errors"

// Sentinel errors for bookstore operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrMissingFields indicates a request with an empty username or password.
	// HTTP Status: 400 Bad Request
	ErrMissingFields = errors.New("username and password are required")

	// ErrUserExists indicates the username is already registered.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("username already exists")

	// ErrInvalidCredentials indicates the provided credentials are incorrect.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLoginRequired indicates a mutation attempted without an
	// authenticated username attached to the request.
	// HTTP Status: 401 Unauthorized
	ErrLoginRequired = errors.New("login required")

	// ErrBookNotFound indicates the ISBN is absent from the catalog.
	// HTTP Status: 404 Not Found
	ErrBookNotFound = errors.New("book not found")

	// ErrReviewNotFound indicates the acting user has no review for the
	// ISBN, or the ISBN itself is unknown.
	// HTTP Status: 404 Not Found
	ErrReviewNotFound = errors.New("review not found")

	// ErrNoBooksForAuthor indicates an author lookup matched nothing.
	// HTTP Status: 404 Not Found
	ErrNoBooksForAuthor = errors.New("no books found for this author")

	// ErrNoBooksForTitle indicates a title lookup matched nothing.
	// HTTP Status: 404 Not Found
	ErrNoBooksForTitle = errors.New("no books found for this title")
)
