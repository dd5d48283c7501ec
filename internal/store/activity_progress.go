package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// ActivityProgressStore defines the interface for activity completion
// persistence. Records are keyed by (learner ID, scope, activity ID);
// at most one record exists per triple, enforced by the store's unique
// key, and records are never deleted.
type ActivityProgressStore interface {
	// Get retrieves a completion record by its natural key.
	// Returns ErrActivityProgressNotFound if no record exists yet.
	Get(
		ctx context.Context,
		learnerID uuid.UUID,
		scope domain.Scope,
		activityID string,
	) (*domain.ActivityProgress, error)

	// Create saves a new completion record.
	// Returns ErrDuplicate if a record already exists for the triple;
	// callers recover by re-reading and retrying as an update.
	Create(ctx context.Context, progress *domain.ActivityProgress) error

	// Update overwrites an existing record identified by its natural
	// key. Returns ErrActivityProgressNotFound if none exists.
	Update(ctx context.Context, progress *domain.ActivityProgress) error

	// ListCompleted returns the learner's completed activities within a
	// scope.
	ListCompleted(
		ctx context.Context,
		learnerID uuid.UUID,
		scope domain.Scope,
	) ([]*domain.ActivityProgress, error)

	// CountCompleted returns the number of completed activities for the
	// learner within a scope.
	CountCompleted(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) (int, error)

	// WithTx returns a new ActivityProgressStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) ActivityProgressStore
}
