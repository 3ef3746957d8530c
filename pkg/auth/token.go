// Package auth inspects bearer tokens issued by the store backend.
//
// The client never holds the backend's signing secret, so tokens are parsed
// without signature verification — only to read the expiry claim and decide
// whether a cached admin session is worth sending or should force a fresh
// sign-in. The backend remains the authority on token validity.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("auth: token expired")

var parser = jwt.NewParser()

// TokenExpiry returns the expiry time of a backend-issued JWT, or zero time
// when the token carries no exp claim or is not a JWT at all (the local
// fallback issues opaque tokens).
func TokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// CheckToken reports ErrTokenExpired when the token's exp claim is in the
// past. Tokens without a readable exp claim pass — the backend will reject
// them if they are actually invalid.
func CheckToken(token string) error {
	exp := TokenExpiry(token)
	if !exp.IsZero() && time.Now().After(exp) {
		return ErrTokenExpired
	}
	return nil
}
