package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// WordProgressStore defines the interface for word review state
// persistence. Records are keyed by (learner ID, word ID) and are only
// ever mutated by the review scheduler; they are never deleted, since
// the counters double as review history.
type WordProgressStore interface {
	// Get retrieves review state by learner and word.
	// Returns ErrWordProgressNotFound if no record exists yet.
	Get(ctx context.Context, learnerID uuid.UUID, wordID int64) (*domain.WordProgress, error)

	// GetBatch retrieves review state for a set of words in one round
	// trip, keyed by word ID. Words without a record are absent from
	// the result rather than an error.
	GetBatch(
		ctx context.Context,
		learnerID uuid.UUID,
		wordIDs []int64,
	) (map[int64]*domain.WordProgress, error)

	// Create saves a new review state record.
	// Returns ErrDuplicate if a record already exists for the pair;
	// callers recover by retrying as an update (last write wins).
	Create(ctx context.Context, progress *domain.WordProgress) error

	// Update overwrites an existing record identified by its learner
	// and word IDs. Returns ErrWordProgressNotFound if none exists.
	Update(ctx context.Context, progress *domain.WordProgress) error

	// ListDue returns words due for review at the given time, oldest
	// due date first. A nil scope means all of the learner's words;
	// limit <= 0 means no limit.
	ListDue(
		ctx context.Context,
		learnerID uuid.UUID,
		scope *domain.Scope,
		limit int,
		now time.Time,
	) ([]*domain.WordProgress, error)

	// CountByStatus returns the number of the learner's words in each
	// status. Statuses with no words are absent from the map.
	CountByStatus(ctx context.Context, learnerID uuid.UUID) (map[domain.WordStatus]int, error)

	// CountDue returns the number of the learner's words whose next
	// review date has passed.
	CountDue(ctx context.Context, learnerID uuid.UUID, now time.Time) (int, error)

	// WithTx returns a new WordProgressStore instance that uses the
	// provided transaction. The transaction is created and managed by
	// the caller.
	WithTx(tx *sql.Tx) WordProgressStore
}
