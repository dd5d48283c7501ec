package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// VocabularyCatalog is the read-only view of the vocabulary owned by
// the content management subsystem. The review scheduler uses it to
// validate word IDs before creating review state.
type VocabularyCatalog interface {
	// WordExists reports whether a word ID is part of the vocabulary.
	WordExists(ctx context.Context, wordID int64) (bool, error)

	// ListWordIDs returns the IDs of all words within a scope, used to
	// drive the vocabulary auto-detection rule.
	ListWordIDs(ctx context.Context, scope domain.Scope) ([]int64, error)
}

// ContentUnitCatalog is the read-only view of content units owned by
// the content management subsystem. The gate resolver reads units and
// their prerequisite pointers from it.
type ContentUnitCatalog interface {
	// GetUnit retrieves a content unit by ID.
	// Returns ErrUnitNotFound if the unit does not exist.
	GetUnit(ctx context.Context, unitID uuid.UUID) (*domain.ContentUnit, error)
}
