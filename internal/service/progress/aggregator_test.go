package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/mocks"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	scope := domain.LevelScope(3, 1)
	ctx := context.Background()

	progressStore := mocks.NewMockWordProgressStore()
	activityStore := mocks.NewMockActivityProgressStore()
	vocabulary := mocks.NewMockVocabularyCatalog()
	vocabulary.SetWords(scope, []int64{1, 2, 3, 4})

	seedWord := func(wordID int64, status domain.WordStatus, due time.Time) {
		record, err := domain.NewWordProgress(learnerID, wordID)
		require.NoError(t, err)
		record.Status = status
		record.NextReviewDate = due
		progressStore.Seed(record)
	}

	now := time.Now().UTC()
	seedWord(1, domain.WordStatusLearning, now.Add(-time.Hour)) // due
	seedWord(2, domain.WordStatusMastered, now.Add(48*time.Hour))
	seedWord(3, domain.WordStatusNew, now.Add(-time.Hour)) // due, still new
	// Word 4 has never been rated.

	tracker := progress.NewTracker(activityStore, progressStore, testLogger())
	_, err := tracker.MarkCompleted(ctx, learnerID, scope, domain.ActivityListening, nil)
	require.NoError(t, err)
	_, err = tracker.MarkCompleted(ctx, learnerID, scope, domain.ActivityQuiz, intPtr(90))
	require.NoError(t, err)

	aggregator := progress.NewAggregator(progressStore, activityStore, vocabulary)

	summary, err := aggregator.Summarize(ctx, learnerID, scope)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalWords)
	assert.Equal(t, 2, summary.LearnedWords, "new and unrated words are not learned")
	assert.Equal(t, 50, summary.PercentComplete)
	assert.Equal(t, 2, summary.DueCount)
	assert.Equal(t, 2, summary.CompletedCount)
	assert.Equal(t, 1, summary.StatusCounts[domain.WordStatusLearning])
	assert.Equal(t, 1, summary.StatusCounts[domain.WordStatusMastered])
	assert.Equal(t, 1, summary.StatusCounts[domain.WordStatusNew])
}

func TestSummarize_EmptyScope(t *testing.T) {
	t.Parallel()

	aggregator := progress.NewAggregator(
		mocks.NewMockWordProgressStore(),
		mocks.NewMockActivityProgressStore(),
		mocks.NewMockVocabularyCatalog(),
	)

	summary, err := aggregator.Summarize(context.Background(), uuid.New(), domain.TopicScope(99))

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalWords)
	assert.Equal(t, 0, summary.PercentComplete, "an empty scope is 0 percent complete")
}

func TestSummarize_InvalidScope(t *testing.T) {
	t.Parallel()

	aggregator := progress.NewAggregator(
		mocks.NewMockWordProgressStore(),
		mocks.NewMockActivityProgressStore(),
		mocks.NewMockVocabularyCatalog(),
	)

	_, err := aggregator.Summarize(context.Background(), uuid.New(), domain.Scope{})

	assert.ErrorIs(t, err, domain.ErrUnknownScope)
}

func TestSummarize_PercentRounding(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	scope := domain.TopicScope(5)

	progressStore := mocks.NewMockWordProgressStore()
	vocabulary := mocks.NewMockVocabularyCatalog()
	vocabulary.SetWords(scope, []int64{1, 2, 3})

	record, err := domain.NewWordProgress(learnerID, 1)
	require.NoError(t, err)
	record.Status = domain.WordStatusLearning
	progressStore.Seed(record)

	aggregator := progress.NewAggregator(
		progressStore, mocks.NewMockActivityProgressStore(), vocabulary)

	summary, err := aggregator.Summarize(context.Background(), learnerID, scope)

	require.NoError(t, err)
	assert.Equal(t, 33, summary.PercentComplete, "1/3 rounds to 33")
}
