package v1

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/bookstore-service/internal/auth"
	"github.com/duynhne/bookstore-service/internal/core/domain"
	"github.com/duynhne/bookstore-service/middleware"
)

// AuthService implements registration and login business rules.
// It depends on repository interfaces (injected via constructor) and
// owns token signing and server-side session creation.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionStore

	tokenSecret []byte
	tokenTTL    time.Duration
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions domain.SessionStore, tokenSecret []byte, tokenTTL, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
		sessionTTL:  sessionTTL,
	}
}

// Register handles user registration business logic. Registration is
// case-sensitive and append-only.
func (s *AuthService) Register(ctx context.Context, req domain.CredentialsRequest) error {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", req.Username),
	))
	defer span.End()

	if req.Username == "" || req.Password == "" {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return fmt.Errorf("register user: %w", ErrMissingFields)
	}

	exists, err := s.users.Exists(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return fmt.Errorf("register user %q: %w", req.Username, ErrUserExists)
	}

	if err := s.users.Create(ctx, req.Username, req.Password); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Bool("registration.success", true))
	span.AddEvent("user.registered")

	return nil
}

// Login handles login business logic. On success it signs a token
// carrying the username claim, binds it to a fresh server-side session,
// and returns that session. On failure no state is created.
func (s *AuthService) Login(ctx context.Context, req domain.CredentialsRequest) (*domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", req.Username),
	))
	defer span.End()

	if req.Username == "" || req.Password == "" {
		span.SetAttributes(attribute.Bool("auth.success", false))
		return nil, fmt.Errorf("login user: %w", ErrMissingFields)
	}

	row, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", req.Username, err)
	}

	// Passwords are opaque strings compared by equality.
	if row == nil || row.Password != req.Password {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user %q: %w", req.Username, ErrInvalidCredentials)
	}

	token, err := auth.GenerateToken(row.Username, s.tokenSecret, s.tokenTTL)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	session, err := s.sessions.Create(ctx, row.Username, token, time.Now().Add(s.sessionTTL))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return session, nil
}
