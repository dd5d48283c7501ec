package progress

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// Verify interface compliance at compile time
var _ Tracker = (*trackerImpl)(nil)

// trackerImpl implements the Tracker interface.
type trackerImpl struct {
	activityStore store.ActivityProgressStore
	progressStore store.WordProgressStore
	logger        *slog.Logger
	now           func() time.Time // Injectable for testing
}

// NewTracker creates a new Tracker implementation.
func NewTracker(
	activityStore store.ActivityProgressStore,
	progressStore store.WordProgressStore,
	logger *slog.Logger,
) Tracker {
	if activityStore == nil {
		panic("activityStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &trackerImpl{
		activityStore: activityStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "progress_tracker")),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// MarkCompleted implements Tracker.MarkCompleted.
func (t *trackerImpl) MarkCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
	score *int,
) (*domain.ActivityProgress, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	if err := validateScopeAndActivity(scope, activityID); err != nil {
		return nil, err
	}

	existing, err := t.activityStore.Get(ctx, learnerID, scope, activityID)
	if err != nil && !errors.Is(err, store.ErrActivityProgressNotFound) {
		return nil, &ServiceError{
			Operation: "mark_completed",
			Message:   "failed to load activity progress",
			Err:       err,
		}
	}

	if existing == nil {
		created, err := t.createCompleted(ctx, learnerID, scope, activityID, score)
		if err == nil {
			log.Debug("activity completed",
				slog.String("learner_id", learnerID.String()),
				slog.String("scope", scope.Key()),
				slog.String("activity_id", activityID))
			return created, nil
		}
		if !store.IsDuplicateError(err) {
			return nil, &ServiceError{
				Operation: "mark_completed",
				Message:   "failed to create activity progress",
				Err:       err,
			}
		}
		// Duplicate-creation race: another request created the record
		// between our read and write. Re-read and continue as an
		// update; the conflict never surfaces to the caller.
		existing, err = t.activityStore.Get(ctx, learnerID, scope, activityID)
		if err != nil {
			return nil, &ServiceError{
				Operation: "mark_completed",
				Message:   "failed to re-read after duplicate creation",
				Err:       err,
			}
		}
	}

	return t.completeExisting(ctx, existing, score)
}

// createCompleted builds and stores a fresh, already-completed record.
func (t *trackerImpl) createCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
	score *int,
) (*domain.ActivityProgress, error) {
	progress, err := domain.NewActivityProgress(learnerID, scope, activityID)
	if err != nil {
		return nil, err
	}

	now := t.now()
	progress.IsCompleted = true
	progress.CompletedAt = now
	progress.UpdatedAt = now
	progress.Score = score

	if err := t.activityStore.Create(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

// completeExisting transitions an existing record to completed, or
// returns it unchanged when completion is already recorded. CompletedAt
// is written exactly once; a completion is never regressed.
func (t *trackerImpl) completeExisting(
	ctx context.Context,
	existing *domain.ActivityProgress,
	score *int,
) (*domain.ActivityProgress, error) {
	now := t.now()
	changed := false

	if !existing.IsCompleted {
		existing.IsCompleted = true
		existing.CompletedAt = now
		changed = true
	}

	// Overwrite the score only when a new one is supplied and it does
	// not regress what is already recorded.
	if score != nil && (existing.Score == nil || *score > *existing.Score) {
		existing.Score = score
		changed = true
	}

	if !changed {
		return existing, nil
	}

	existing.UpdatedAt = now
	if err := t.activityStore.Update(ctx, existing); err != nil {
		return nil, &ServiceError{
			Operation: "mark_completed",
			Message:   "failed to update activity progress",
			Err:       err,
		}
	}

	return existing, nil
}

// IsCompleted implements Tracker.IsCompleted.
func (t *trackerImpl) IsCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
) (bool, error) {
	if err := validateScopeAndActivity(scope, activityID); err != nil {
		return false, err
	}

	progress, err := t.activityStore.Get(ctx, learnerID, scope, activityID)
	if err != nil {
		if errors.Is(err, store.ErrActivityProgressNotFound) {
			return false, nil
		}
		return false, &ServiceError{
			Operation: "is_completed",
			Message:   "failed to load activity progress",
			Err:       err,
		}
	}

	return progress.IsCompleted, nil
}

// CountCompleted implements Tracker.CountCompleted.
func (t *trackerImpl) CountCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) (int, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	count, err := t.activityStore.CountCompleted(ctx, learnerID, scope)
	if err != nil {
		return 0, &ServiceError{
			Operation: "count_completed",
			Message:   "failed to count completed activities",
			Err:       err,
		}
	}

	return count, nil
}

// ListCompleted implements Tracker.ListCompleted.
func (t *trackerImpl) ListCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) ([]*domain.ActivityProgress, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	completed, err := t.activityStore.ListCompleted(ctx, learnerID, scope)
	if err != nil {
		return nil, &ServiceError{
			Operation: "list_completed",
			Message:   "failed to list completed activities",
			Err:       err,
		}
	}

	return completed, nil
}

// CheckAndMarkVocabulary implements Tracker.CheckAndMarkVocabulary.
func (t *trackerImpl) CheckAndMarkVocabulary(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	wordIDs []int64,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	if err := scope.Validate(); err != nil {
		return false, err
	}

	// An empty scope can never be "fully learned".
	if len(wordIDs) == 0 {
		return false, nil
	}

	records, err := t.progressStore.GetBatch(ctx, learnerID, wordIDs)
	if err != nil {
		return false, &ServiceError{
			Operation: "check_vocabulary",
			Message:   "failed to load word review state",
			Err:       err,
		}
	}

	// Every word needs a record, and none may still be new. A word the
	// learner has never rated blocks completion, so partial progress
	// never unlocks downstream content.
	for _, wordID := range wordIDs {
		record, ok := records[wordID]
		if !ok || record.Status == domain.WordStatusNew {
			return false, nil
		}
	}

	if _, err := t.MarkCompleted(ctx, learnerID, scope, domain.ActivityVocabulary, nil); err != nil {
		return false, err
	}

	log.Debug("vocabulary activity auto-completed",
		slog.String("learner_id", learnerID.String()),
		slog.String("scope", scope.Key()),
		slog.Int("word_count", len(wordIDs)))

	return true, nil
}
