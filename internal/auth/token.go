// File: internal/auth/token.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The backend issues and validates the bearer token; the console never holds
// the signing secret. ParseUnverified only peeks at the claims, so an
// obviously expired token can be discarded without a doomed round-trip.

// TokenExpiry returns the exp claim of a backend-issued JWT.
func TokenExpiry(tokenString string) (time.Time, error) {
	if tokenString == "" {
		return time.Time{}, errors.New("token cannot be empty")
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("unexpected claims format")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token has no expiration claim")
	}
	return exp.Time, nil
}

// IsExpired reports whether the token's exp claim is in the past. Tokens the
// console cannot parse are not treated as expired; the backend stays the
// authority and will answer 401 if it disagrees.
func IsExpired(tokenString string, now time.Time) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return false
	}
	return exp.Before(now)
}
