package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// MockVocabularyCatalog implements store.VocabularyCatalog for testing
type MockVocabularyCatalog struct {
	// Function fields for customizable behavior
	WordExistsFn  func(ctx context.Context, wordID int64) (bool, error)
	ListWordIDsFn func(ctx context.Context, scope domain.Scope) ([]int64, error)

	// Data for default implementation, keyed by scope key
	Words map[string][]int64
}

// NewMockVocabularyCatalog creates a new mock catalog with initialized defaults
func NewMockVocabularyCatalog() *MockVocabularyCatalog {
	return &MockVocabularyCatalog{
		Words: make(map[string][]int64),
	}
}

// SetWords registers the word list for a scope.
func (m *MockVocabularyCatalog) SetWords(scope domain.Scope, wordIDs []int64) {
	m.Words[scope.Key()] = wordIDs
}

// WordExists implements the VocabularyCatalog interface
func (m *MockVocabularyCatalog) WordExists(ctx context.Context, wordID int64) (bool, error) {
	if m.WordExistsFn != nil {
		return m.WordExistsFn(ctx, wordID)
	}

	for _, ids := range m.Words {
		for _, id := range ids {
			if id == wordID {
				return true, nil
			}
		}
	}
	return false, nil
}

// ListWordIDs implements the VocabularyCatalog interface
func (m *MockVocabularyCatalog) ListWordIDs(
	ctx context.Context,
	scope domain.Scope,
) ([]int64, error) {
	if m.ListWordIDsFn != nil {
		return m.ListWordIDsFn(ctx, scope)
	}

	return m.Words[scope.Key()], nil
}

// MockContentUnitCatalog implements store.ContentUnitCatalog for testing
type MockContentUnitCatalog struct {
	// Function fields for customizable behavior
	GetUnitFn func(ctx context.Context, unitID uuid.UUID) (*domain.ContentUnit, error)

	// Data for default implementation
	Units map[uuid.UUID]*domain.ContentUnit
}

// NewMockContentUnitCatalog creates a new mock catalog with initialized defaults
func NewMockContentUnitCatalog() *MockContentUnitCatalog {
	return &MockContentUnitCatalog{
		Units: make(map[uuid.UUID]*domain.ContentUnit),
	}
}

// AddUnit registers a content unit.
func (m *MockContentUnitCatalog) AddUnit(unit *domain.ContentUnit) {
	m.Units[unit.ID] = unit
}

// GetUnit implements the ContentUnitCatalog interface
func (m *MockContentUnitCatalog) GetUnit(
	ctx context.Context,
	unitID uuid.UUID,
) (*domain.ContentUnit, error) {
	if m.GetUnitFn != nil {
		return m.GetUnitFn(ctx, unitID)
	}

	unit, exists := m.Units[unitID]
	if !exists {
		return nil, store.ErrUnitNotFound
	}

	copied := *unit
	return &copied, nil
}
