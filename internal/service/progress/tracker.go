// Package progress implements the activity progress tracker, the
// prerequisite gate resolver, and the read-only progress aggregator.
package progress

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// Tracker records and queries activity completion for learners. It owns
// the ActivityProgress records and the auto-detection rule that derives
// the synthetic vocabulary activity from word review state.
type Tracker interface {
	// MarkCompleted marks an activity completed for a learner within a
	// scope. It is idempotent: repeat calls return the existing record
	// with its original completion timestamp. A score is recorded only
	// when explicitly supplied and never regresses a previous score.
	//
	// Returns domain.ErrUnknownScope or domain.ErrUnknownActivity for
	// bad input, rejected before any state mutation.
	MarkCompleted(
		ctx context.Context,
		learnerID uuid.UUID,
		scope domain.Scope,
		activityID string,
		score *int,
	) (*domain.ActivityProgress, error)

	// IsCompleted reports whether the learner has completed the
	// activity within the scope. A missing record means not completed.
	IsCompleted(
		ctx context.Context,
		learnerID uuid.UUID,
		scope domain.Scope,
		activityID string,
	) (bool, error)

	// CountCompleted returns the number of completed activities for the
	// learner within the scope.
	CountCompleted(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) (int, error)

	// ListCompleted returns the learner's completed activities within
	// the scope.
	ListCompleted(
		ctx context.Context,
		learnerID uuid.UUID,
		scope domain.Scope,
	) ([]*domain.ActivityProgress, error)

	// CheckAndMarkVocabulary applies the auto-detection rule: it marks
	// the synthetic vocabulary activity complete iff every word in
	// wordIDs has a review record and none of them is still new.
	// Partial progress never completes the activity, so downstream
	// units cannot unlock prematurely. Returns whether the activity is
	// complete after the call; when the rule does not fire, nothing is
	// written.
	//
	// The rule re-reads all word records at call time; it never relies
	// on cached counts, since any word's status may have changed since
	// the last check.
	CheckAndMarkVocabulary(
		ctx context.Context,
		learnerID uuid.UUID,
		scope domain.Scope,
		wordIDs []int64,
	) (bool, error)
}

// ServiceError wraps errors from the progress services with operation
// context.
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

// Re-exported validation errors so callers need not import domain for
// the common failure modes.
var (
	ErrUnknownScope    = domain.ErrUnknownScope
	ErrUnknownActivity = domain.ErrUnknownActivity
)

// validateScopeAndActivity is the shared input check for tracker
// operations.
func validateScopeAndActivity(scope domain.Scope, activityID string) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if activityID == "" || !domain.IsValidActivity(activityID) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownActivity, activityID)
	}
	return nil
}
