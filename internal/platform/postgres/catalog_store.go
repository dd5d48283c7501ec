package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PostgresCatalogStore implements the read-only catalog interfaces
// (store.VocabularyCatalog and store.ContentUnitCatalog) over the
// tables owned by the content management subsystem. This engine never
// writes to them.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL catalog store.
// If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements the catalog interfaces
var (
	_ store.VocabularyCatalog  = (*PostgresCatalogStore)(nil)
	_ store.ContentUnitCatalog = (*PostgresCatalogStore)(nil)
)

// WordExists implements store.VocabularyCatalog.WordExists
func (s *PostgresCatalogStore) WordExists(ctx context.Context, wordID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM words WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, wordID).Scan(&exists); err != nil {
		return false, MapError(err)
	}

	return exists, nil
}

// ListWordIDs implements store.VocabularyCatalog.ListWordIDs
func (s *PostgresCatalogStore) ListWordIDs(
	ctx context.Context,
	scope domain.Scope,
) ([]int64, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var query string
	var args []any
	if scope.IsTopic() {
		query = `SELECT id FROM words WHERE topic_id = $1 ORDER BY id`
		args = []any{scope.TopicID}
	} else {
		query = `SELECT id FROM words WHERE hsk_level = $1 AND part_number = $2 ORDER BY id`
		args = []any{scope.HSKLevel, scope.PartNumber}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}

// GetUnit implements store.ContentUnitCatalog.GetUnit
func (s *PostgresCatalogStore) GetUnit(
	ctx context.Context,
	unitID uuid.UUID,
) (*domain.ContentUnit, error) {
	query := `SELECT id, kind, title, prerequisite_unit_id, hsk_level, part_number, topic_id
		FROM content_units
		WHERE id = $1`

	var unit domain.ContentUnit
	var kind string
	var prereq uuid.NullUUID
	var hskLevel, partNumber, topicID sql.NullInt64

	err := s.db.QueryRowContext(ctx, query, unitID).Scan(
		&unit.ID,
		&kind,
		&unit.Title,
		&prereq,
		&hskLevel,
		&partNumber,
		&topicID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUnitNotFound
		}
		return nil, MapError(err)
	}

	unit.Kind = domain.UnitKind(kind)
	if prereq.Valid {
		id := prereq.UUID
		unit.PrerequisiteUnitID = &id
	}
	if topicID.Valid {
		unit.Scope = domain.TopicScope(topicID.Int64)
	} else if hskLevel.Valid {
		unit.Scope = domain.LevelScope(int(hskLevel.Int64), int(partNumber.Int64))
	}

	activities, err := s.listUnitActivities(ctx, unitID)
	if err != nil {
		return nil, err
	}
	unit.RequiredActivities = activities

	return &unit, nil
}

// listUnitActivities loads the unit's required activity set.
func (s *PostgresCatalogStore) listUnitActivities(
	ctx context.Context,
	unitID uuid.UUID,
) ([]string, error) {
	query := `SELECT activity_id FROM content_unit_activities WHERE unit_id = $1 ORDER BY activity_id`

	rows, err := s.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var activities []string
	for rows.Next() {
		var activityID string
		if err := rows.Scan(&activityID); err != nil {
			return nil, MapError(err)
		}
		activities = append(activities, activityID)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return activities, nil
}
