// Package review orchestrates the spaced repetition scheduler: it
// validates ratings against the vocabulary catalog, applies the SRS
// algorithm, and persists the resulting review state.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// ReviewService provides the rating and due-query operations of the
// progression engine.
type ReviewService interface {
	// SubmitReview applies a learner's rating to a word and returns the
	// updated review state. The record is created lazily on the first
	// rating. Concurrent ratings for the same (learner, word) pair
	// resolve as last write wins; counters are never merged.
	//
	// Returns ErrInvalidRating for ratings outside {easy, hard, forgot}
	// and ErrWordNotFound when the word is not in the vocabulary
	// catalog. Both are rejected before any state mutation.
	SubmitReview(
		ctx context.Context,
		learnerID uuid.UUID,
		wordID int64,
		rating domain.Rating,
	) (*domain.WordProgress, error)

	// GetDueWords returns the learner's words due for review, oldest
	// first. A nil scope means all scopes; limit <= 0 means no limit.
	GetDueWords(
		ctx context.Context,
		learnerID uuid.UUID,
		scope *domain.Scope,
		limit int,
	) ([]*domain.WordProgress, error)
}

// Common error types for ReviewService.
var (
	// ErrInvalidRating indicates a rating outside the recognized enum.
	ErrInvalidRating = domain.ErrInvalidRating

	// ErrWordNotFound indicates the word does not exist in the
	// vocabulary catalog.
	ErrWordNotFound = errors.New("word not found")
)

// ServiceError wraps errors from the review service with operation
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
