package progress

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// Summary is a read-only rollup of a learner's progress within a scope.
type Summary struct {
	Scope           domain.Scope              `json:"scope"`
	TotalWords      int                       `json:"total_words"`
	LearnedWords    int                       `json:"learned_words"` // Words past the new stage
	PercentComplete int                       `json:"percent_complete"`
	StatusCounts    map[domain.WordStatus]int `json:"status_counts"` // Across all of the learner's words
	DueCount        int                       `json:"due_count"`
	CompletedCount  int                       `json:"completed_activities"`
}

// Aggregator derives progress rollups from the two progression stores.
// It holds no state of its own and never mutates anything.
type Aggregator interface {
	// Summarize builds the progress rollup for a learner and scope.
	Summarize(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) (*Summary, error)
}

// Verify interface compliance at compile time
var _ Aggregator = (*aggregatorImpl)(nil)

type aggregatorImpl struct {
	progressStore store.WordProgressStore
	activityStore store.ActivityProgressStore
	vocabulary    store.VocabularyCatalog
	now           func() time.Time // Injectable for testing
}

// NewAggregator creates a new Aggregator implementation.
func NewAggregator(
	progressStore store.WordProgressStore,
	activityStore store.ActivityProgressStore,
	vocabulary store.VocabularyCatalog,
) Aggregator {
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if activityStore == nil {
		panic("activityStore cannot be nil")
	}
	if vocabulary == nil {
		panic("vocabulary cannot be nil")
	}

	return &aggregatorImpl{
		progressStore: progressStore,
		activityStore: activityStore,
		vocabulary:    vocabulary,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Summarize implements Aggregator.Summarize.
func (a *aggregatorImpl) Summarize(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) (*Summary, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	wordIDs, err := a.vocabulary.ListWordIDs(ctx, scope)
	if err != nil {
		return nil, &ServiceError{
			Operation: "summarize",
			Message:   "failed to list scope words",
			Err:       err,
		}
	}

	records, err := a.progressStore.GetBatch(ctx, learnerID, wordIDs)
	if err != nil {
		return nil, &ServiceError{
			Operation: "summarize",
			Message:   "failed to load word review state",
			Err:       err,
		}
	}

	learned := 0
	for _, record := range records {
		if record.Status != domain.WordStatusNew {
			learned++
		}
	}

	statusCounts, err := a.progressStore.CountByStatus(ctx, learnerID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "summarize",
			Message:   "failed to count word statuses",
			Err:       err,
		}
	}

	dueCount, err := a.progressStore.CountDue(ctx, learnerID, a.now())
	if err != nil {
		return nil, &ServiceError{
			Operation: "summarize",
			Message:   "failed to count due words",
			Err:       err,
		}
	}

	completedCount, err := a.activityStore.CountCompleted(ctx, learnerID, scope)
	if err != nil {
		return nil, &ServiceError{
			Operation: "summarize",
			Message:   "failed to count completed activities",
			Err:       err,
		}
	}

	return &Summary{
		Scope:           scope,
		TotalWords:      len(wordIDs),
		LearnedWords:    learned,
		PercentComplete: percent(learned, len(wordIDs)),
		StatusCounts:    statusCounts,
		DueCount:        dueCount,
		CompletedCount:  completedCount,
	}, nil
}

// percent computes completed/total as a percentage rounded to the
// nearest integer. An empty scope is 0 percent complete.
func percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
