// Package auth provides JWT validation for learner identity. Token
// issuance lives in the platform's identity service; this package only
// generates tokens for tests and tooling and validates bearer tokens on
// API requests.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed, has an
	// invalid signature, or carries unexpected claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token expired")

	// ErrEmptyToken is returned when no token was supplied.
	ErrEmptyToken = errors.New("token cannot be empty")
)
