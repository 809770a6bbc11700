// Package auth provides signing and verification of login tokens.
// Tokens are self-contained HS256 JWTs carrying a username claim, so
// verification needs only the shared secret — no store round-trip.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, malformed input, or lapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims binds the standard registered claims to the username the
// token asserts.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken signs a token asserting the given username, valid for
// the given duration.
func GenerateToken(username string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Username: username,
	})

	return token.SignedString(secret)
}

// UsernameFromToken verifies the token against the secret and returns
// the username claim. Any verification failure maps to ErrInvalidToken.
func UsernameFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}
