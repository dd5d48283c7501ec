package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// MockWordProgressStore implements store.WordProgressStore for testing
type MockWordProgressStore struct {
	// Function fields for customizable behavior
	GetFn           func(ctx context.Context, learnerID uuid.UUID, wordID int64) (*domain.WordProgress, error)
	GetBatchFn      func(ctx context.Context, learnerID uuid.UUID, wordIDs []int64) (map[int64]*domain.WordProgress, error)
	CreateFn        func(ctx context.Context, progress *domain.WordProgress) error
	UpdateFn        func(ctx context.Context, progress *domain.WordProgress) error
	ListDueFn       func(ctx context.Context, learnerID uuid.UUID, scope *domain.Scope, limit int, now time.Time) ([]*domain.WordProgress, error)
	CountByStatusFn func(ctx context.Context, learnerID uuid.UUID) (map[domain.WordStatus]int, error)
	CountDueFn      func(ctx context.Context, learnerID uuid.UUID, now time.Time) (int, error)

	// Data for default implementation, keyed by "learnerID:wordID"
	Records map[string]*domain.WordProgress
}

// NewMockWordProgressStore creates a new mock store with initialized defaults
func NewMockWordProgressStore() *MockWordProgressStore {
	return &MockWordProgressStore{
		Records: make(map[string]*domain.WordProgress),
	}
}

func progressKey(learnerID uuid.UUID, wordID int64) string {
	return fmt.Sprintf("%s:%d", learnerID, wordID)
}

// Seed stores a record directly, bypassing Create semantics.
func (m *MockWordProgressStore) Seed(progress *domain.WordProgress) {
	copied := *progress
	m.Records[progressKey(progress.LearnerID, progress.WordID)] = &copied
}

// Get implements the WordProgressStore interface
func (m *MockWordProgressStore) Get(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID int64,
) (*domain.WordProgress, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, learnerID, wordID)
	}

	record, exists := m.Records[progressKey(learnerID, wordID)]
	if !exists {
		return nil, store.ErrWordProgressNotFound
	}

	copied := *record
	return &copied, nil
}

// GetBatch implements the WordProgressStore interface
func (m *MockWordProgressStore) GetBatch(
	ctx context.Context,
	learnerID uuid.UUID,
	wordIDs []int64,
) (map[int64]*domain.WordProgress, error) {
	if m.GetBatchFn != nil {
		return m.GetBatchFn(ctx, learnerID, wordIDs)
	}

	result := make(map[int64]*domain.WordProgress, len(wordIDs))
	for _, wordID := range wordIDs {
		if record, exists := m.Records[progressKey(learnerID, wordID)]; exists {
			copied := *record
			result[wordID] = &copied
		}
	}
	return result, nil
}

// Create implements the WordProgressStore interface
func (m *MockWordProgressStore) Create(ctx context.Context, progress *domain.WordProgress) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, progress)
	}

	key := progressKey(progress.LearnerID, progress.WordID)
	if _, exists := m.Records[key]; exists {
		return store.ErrDuplicate
	}

	copied := *progress
	m.Records[key] = &copied
	return nil
}

// Update implements the WordProgressStore interface
func (m *MockWordProgressStore) Update(ctx context.Context, progress *domain.WordProgress) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, progress)
	}

	key := progressKey(progress.LearnerID, progress.WordID)
	if _, exists := m.Records[key]; !exists {
		return store.ErrWordProgressNotFound
	}

	copied := *progress
	m.Records[key] = &copied
	return nil
}

// ListDue implements the WordProgressStore interface
// The default implementation ignores scope, since the mock holds no
// vocabulary metadata; use ListDueFn for scope-sensitive tests.
func (m *MockWordProgressStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	scope *domain.Scope,
	limit int,
	now time.Time,
) ([]*domain.WordProgress, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, learnerID, scope, limit, now)
	}

	var due []*domain.WordProgress
	for _, record := range m.Records {
		if record.LearnerID == learnerID && record.IsDue(now) {
			copied := *record
			due = append(due, &copied)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReviewDate.Before(due[j].NextReviewDate)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// CountByStatus implements the WordProgressStore interface
func (m *MockWordProgressStore) CountByStatus(
	ctx context.Context,
	learnerID uuid.UUID,
) (map[domain.WordStatus]int, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, learnerID)
	}

	counts := make(map[domain.WordStatus]int)
	for _, record := range m.Records {
		if record.LearnerID == learnerID {
			counts[record.Status]++
		}
	}
	return counts, nil
}

// CountDue implements the WordProgressStore interface
func (m *MockWordProgressStore) CountDue(
	ctx context.Context,
	learnerID uuid.UUID,
	now time.Time,
) (int, error) {
	if m.CountDueFn != nil {
		return m.CountDueFn(ctx, learnerID, now)
	}

	count := 0
	for _, record := range m.Records {
		if record.LearnerID == learnerID && record.IsDue(now) {
			count++
		}
	}
	return count, nil
}

// WithTx implements the WordProgressStore interface
func (m *MockWordProgressStore) WithTx(tx *sql.Tx) store.WordProgressStore {
	return m
}
