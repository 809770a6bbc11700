package v1

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/bookstore-service/internal/core/domain"
	logicv1 "github.com/duynhne/bookstore-service/internal/logic/v1"
	"github.com/duynhne/bookstore-service/middleware"
)

// Handler groups HTTP handlers for the bookstore API.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth    *logicv1.AuthService
	catalog *logicv1.CatalogService
	reviews *logicv1.ReviewService

	sessionMaxAge int
}

// NewHandler creates a new Handler with the given services.
// sessionMaxAge is the cookie lifetime in seconds.
func NewHandler(auth *logicv1.AuthService, catalog *logicv1.CatalogService, reviews *logicv1.ReviewService, sessionMaxAge int) *Handler {
	return &Handler{
		auth:          auth,
		catalog:       catalog,
		reviews:       reviews,
		sessionMaxAge: sessionMaxAge,
	}
}

// RegisterRoutes registers all bookstore routes on the given engine.
// The guard protects the review mutation group only; everything else
// is public.
func (h *Handler) RegisterRoutes(r *gin.Engine, guard gin.HandlerFunc) {
	customer := r.Group("/customer")
	customer.POST("/register", h.Register)
	customer.POST("/login", h.Login)

	protected := customer.Group("/auth", guard)
	protected.PUT("/review/:isbn", h.UpsertReview)
	protected.DELETE("/review/:isbn", h.DeleteReview)

	r.GET("/", h.ListBooks)
	r.GET("/books", h.ListBooks)
	r.GET("/isbn/:isbn", h.GetBook)
	r.GET("/author/:author", h.BooksByAuthor)
	r.GET("/title/:title", h.BooksByTitle)
	r.GET("/review/:isbn", h.GetReviews)
}

// Register handles HTTP requests for customer registration.
// POST /customer/register
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	if err := h.auth.Register(ctx, req); err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("username", req.Username).Msg("Registration failed")

		switch {
		case errors.Is(err, logicv1.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		case errors.Is(err, logicv1.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	logger.Info().Str("username", req.Username).Msg("Customer registered")
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login handles HTTP requests for customer login. On success the
// server-side session ID is written into the cookie and the signed
// token is returned in the body.
// POST /customer/login
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	session, err := h.auth.Login(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")

		switch {
		case errors.Is(err, logicv1.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			// Same body whether the user is unknown or the password is
			// wrong, so existence is not revealed.
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	cookie := sessions.Default(c)
	cookie.Options(sessions.Options{
		Path:     "/",
		MaxAge:   h.sessionMaxAge,
		HttpOnly: true,
	})
	cookie.Set(middleware.SessionIDKey, session.ID)
	if err := cookie.Save(); err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Msg("Failed to save session cookie")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	logger.Info().Str("username", req.Username).Msg("Customer logged in")
	c.JSON(http.StatusOK, domain.LoginResponse{
		Message: "Customer successfully logged in",
		Token:   session.Token,
	})
}

// UpsertReview adds or modifies the authenticated customer's review.
// PUT /customer/auth/review/:isbn
func (h *Handler) UpsertReview(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	isbn := c.Param("isbn")
	username := middleware.UsernameFromContext(c)

	var req domain.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Review body is required"})
		return
	}

	if err := h.reviews.Upsert(ctx, username, isbn, req.Review); err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("isbn", isbn).Msg("Review upsert failed")

		switch {
		case errors.Is(err, logicv1.ErrLoginRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Login required"})
		case errors.Is(err, logicv1.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	logger.Info().Str("isbn", isbn).Str("username", username).Msg("Review upserted")
	c.JSON(http.StatusOK, gin.H{"message": "Review added/updated successfully"})
}

// DeleteReview removes the authenticated customer's review.
// DELETE /customer/auth/review/:isbn
func (h *Handler) DeleteReview(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	isbn := c.Param("isbn")
	username := middleware.UsernameFromContext(c)

	if err := h.reviews.Delete(ctx, username, isbn); err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("isbn", isbn).Msg("Review delete failed")

		switch {
		case errors.Is(err, logicv1.ErrLoginRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Login required"})
		case errors.Is(err, logicv1.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found for this user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	logger.Info().Str("isbn", isbn).Str("username", username).Msg("Review deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// GetReviews returns the review mapping for a book.
// GET /review/:isbn
func (h *Handler) GetReviews(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	reviews, err := h.reviews.Reviews(ctx, c.Param("isbn"))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// ListBooks returns the full catalog.
// GET / and GET /books
func (h *Handler) ListBooks(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	books, err := h.catalog.List(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetBook returns a single book by ISBN.
// GET /isbn/:isbn
func (h *Handler) GetBook(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	book, err := h.catalog.GetByISBN(ctx, c.Param("isbn"))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, book)
}

// BooksByAuthor returns all books by an author.
// GET /author/:author
func (h *Handler) BooksByAuthor(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	books, err := h.catalog.ByAuthor(ctx, c.Param("author"))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrNoBooksForAuthor) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No books found for this author"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, books)
}

// BooksByTitle returns all books with a title.
// GET /title/:title
func (h *Handler) BooksByTitle(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	books, err := h.catalog.ByTitle(ctx, c.Param("title"))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrNoBooksForTitle) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No books found for this title"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, books)
}
