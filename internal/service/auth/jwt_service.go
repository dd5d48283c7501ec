package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for learner identity tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for a learner.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, learnerID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts
	// the claims. Returns ErrExpiredToken or ErrInvalidToken when
	// validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of a learner token.
type Claims struct {
	// LearnerID is the unique identifier of the learner the token was
	// issued for.
	LearnerID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}
