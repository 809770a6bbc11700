package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/duynhne/bookstore-service/internal/auth"
	"github.com/duynhne/bookstore-service/internal/core/domain"
)

// ContextUsernameKey is the gin context key under which the guard
// stores the verified username claim for downstream handlers.
const ContextUsernameKey = "auth.username"

// SessionIDKey is the key under which the login handler stores the
// server-side session ID inside the client's cookie-backed session.
const SessionIDKey = "session_id"

// AuthGuard returns a middleware protecting mutating routes. It walks
// a per-request state machine: no usable session or stored token →
// 403 before the handler runs; token present but failing verification
// → 403; verified → username attached to the context and the chain
// continues.
func AuthGuard(store domain.SessionStore, tokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zerolog.Ctx(c.Request.Context())

		session, ok := lookupSession(c, store)
		if !ok || session.Token == "" {
			logger.Warn().Str("path", c.Request.URL.Path).Msg("Rejected request without token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied, no token provided"})
			return
		}

		username, err := auth.UsernameFromToken(session.Token, tokenSecret)
		if err != nil {
			logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected request with bad token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(ContextUsernameKey, username)
		c.Next()
	}
}

// lookupSession resolves the cookie's session ID against the store.
// Expired entries are removed eagerly and treated as absent.
func lookupSession(c *gin.Context, store domain.SessionStore) (*domain.Session, bool) {
	id, ok := sessions.Default(c).Get(SessionIDKey).(string)
	if !ok || id == "" {
		return nil, false
	}

	ctx := c.Request.Context()
	session, err := store.Get(ctx, id)
	if err != nil || session == nil {
		return nil, false
	}
	if session.Expired(time.Now()) {
		_ = store.Expire(ctx, id)
		return nil, false
	}
	return session, true
}

// UsernameFromContext returns the username the guard attached, or ""
// when the request never passed the guard.
func UsernameFromContext(c *gin.Context) string {
	return c.GetString(ContextUsernameKey)
}
