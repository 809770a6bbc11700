package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/bookstore-service/internal/auth"
	"github.com/duynhne/bookstore-service/internal/core/domain"
	"github.com/duynhne/bookstore-service/internal/core/repository"
)

var guardSecret = []byte("guard-secret")

// newGuardRouter wires the guard behind a cookie session transport,
// plus a grant route so tests can mint a cookie for any session id.
func newGuardRouter(store domain.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("bookstore_session", cookie.NewStore([]byte("cookie-secret"))))

	r.GET("/grant/:id", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(SessionIDKey, c.Param("id"))
		_ = s.Save()
		c.Status(http.StatusNoContent)
	})

	protected := r.Group("/probe", AuthGuard(store, guardSecret))
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": UsernameFromContext(c)})
	})

	return r
}

// grantCookie performs the grant request and returns the session cookies.
func grantCookie(t *testing.T, r *gin.Engine, sessionID string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/grant/"+sessionID, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func probe(r *gin.Engine, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuard_NoSession(t *testing.T) {
	store := repository.NewSessionStore()
	r := newGuardRouter(store)

	w := probe(r, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied, no token provided")
}

func TestAuthGuard_UnknownSessionID(t *testing.T) {
	store := repository.NewSessionStore()
	r := newGuardRouter(store)

	cookies := grantCookie(t, r, "no-such-session")
	w := probe(r, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied, no token provided")
}

func TestAuthGuard_ValidToken(t *testing.T) {
	ctx := context.Background()
	store := repository.NewSessionStore()
	r := newGuardRouter(store)

	token, err := auth.GenerateToken("alice", guardSecret, time.Hour)
	require.NoError(t, err)
	session, err := store.Create(ctx, "alice", token, time.Now().Add(time.Hour))
	require.NoError(t, err)

	cookies := grantCookie(t, r, session.ID)
	w := probe(r, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestAuthGuard_TamperedToken(t *testing.T) {
	ctx := context.Background()
	store := repository.NewSessionStore()
	r := newGuardRouter(store)

	token, err := auth.GenerateToken("alice", []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	session, err := store.Create(ctx, "alice", token, time.Now().Add(time.Hour))
	require.NoError(t, err)

	cookies := grantCookie(t, r, session.ID)
	w := probe(r, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthGuard_ExpiredTokenSignature(t *testing.T) {
	ctx := context.Background()
	store := repository.NewSessionStore()
	r := newGuardRouter(store)

	token, err := auth.GenerateToken("alice", guardSecret, -time.Minute)
	require.NoError(t, err)
	session, err := store.Create(ctx, "alice", token, time.Now().Add(time.Hour))
	require.NoError(t, err)

	cookies := grantCookie(t, r, session.ID)
	w := probe(r, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthGuard_ExpiredSessionIsEvicted(t *testing.T) {
	ctx := context.Background()
	store := repository.NewSessionStore()
	r := newGuardRouter(store)

	token, err := auth.GenerateToken("alice", guardSecret, time.Hour)
	require.NoError(t, err)
	session, err := store.Create(ctx, "alice", token, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	cookies := grantCookie(t, r, session.ID)
	w := probe(r, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied, no token provided")

	// The lapsed session was removed from the store on first sight.
	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
