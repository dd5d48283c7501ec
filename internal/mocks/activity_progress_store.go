package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// MockActivityProgressStore implements store.ActivityProgressStore for testing
type MockActivityProgressStore struct {
	// Function fields for customizable behavior
	GetFn            func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope, activityID string) (*domain.ActivityProgress, error)
	CreateFn         func(ctx context.Context, progress *domain.ActivityProgress) error
	UpdateFn         func(ctx context.Context, progress *domain.ActivityProgress) error
	ListCompletedFn  func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) ([]*domain.ActivityProgress, error)
	CountCompletedFn func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) (int, error)

	// Data for default implementation, keyed by "learnerID:scopeKey:activityID"
	Records map[string]*domain.ActivityProgress
}

// NewMockActivityProgressStore creates a new mock store with initialized defaults
func NewMockActivityProgressStore() *MockActivityProgressStore {
	return &MockActivityProgressStore{
		Records: make(map[string]*domain.ActivityProgress),
	}
}

func activityKey(learnerID uuid.UUID, scope domain.Scope, activityID string) string {
	return fmt.Sprintf("%s:%s:%s", learnerID, scope.Key(), activityID)
}

// Seed stores a record directly, bypassing Create semantics.
func (m *MockActivityProgressStore) Seed(progress *domain.ActivityProgress) {
	copied := *progress
	m.Records[activityKey(progress.LearnerID, progress.Scope, progress.ActivityID)] = &copied
}

// Get implements the ActivityProgressStore interface
func (m *MockActivityProgressStore) Get(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
) (*domain.ActivityProgress, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, learnerID, scope, activityID)
	}

	record, exists := m.Records[activityKey(learnerID, scope, activityID)]
	if !exists {
		return nil, store.ErrActivityProgressNotFound
	}

	copied := *record
	return &copied, nil
}

// Create implements the ActivityProgressStore interface
func (m *MockActivityProgressStore) Create(
	ctx context.Context,
	progress *domain.ActivityProgress,
) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, progress)
	}

	key := activityKey(progress.LearnerID, progress.Scope, progress.ActivityID)
	if _, exists := m.Records[key]; exists {
		return store.ErrDuplicate
	}

	copied := *progress
	m.Records[key] = &copied
	return nil
}

// Update implements the ActivityProgressStore interface
func (m *MockActivityProgressStore) Update(
	ctx context.Context,
	progress *domain.ActivityProgress,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, progress)
	}

	key := activityKey(progress.LearnerID, progress.Scope, progress.ActivityID)
	if _, exists := m.Records[key]; !exists {
		return store.ErrActivityProgressNotFound
	}

	copied := *progress
	m.Records[key] = &copied
	return nil
}

// ListCompleted implements the ActivityProgressStore interface
func (m *MockActivityProgressStore) ListCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) ([]*domain.ActivityProgress, error) {
	if m.ListCompletedFn != nil {
		return m.ListCompletedFn(ctx, learnerID, scope)
	}

	var completed []*domain.ActivityProgress
	for _, record := range m.Records {
		if record.LearnerID == learnerID && record.Scope == scope && record.IsCompleted {
			copied := *record
			completed = append(completed, &copied)
		}
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CompletedAt.Before(completed[j].CompletedAt)
	})
	return completed, nil
}

// CountCompleted implements the ActivityProgressStore interface
func (m *MockActivityProgressStore) CountCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) (int, error) {
	if m.CountCompletedFn != nil {
		return m.CountCompletedFn(ctx, learnerID, scope)
	}

	count := 0
	for _, record := range m.Records {
		if record.LearnerID == learnerID && record.Scope == scope && record.IsCompleted {
			count++
		}
	}
	return count, nil
}

// WithTx implements the ActivityProgressStore interface
func (m *MockActivityProgressStore) WithTx(tx *sql.Tx) store.ActivityProgressStore {
	return m
}
