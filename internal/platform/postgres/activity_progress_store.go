package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PostgresActivityProgressStore implements the
// store.ActivityProgressStore interface using a PostgreSQL database as
// the storage backend. Uniqueness of (learner, scope, activity) is
// enforced by a unique index over (learner_id, scope_key, activity_id);
// the scope key is the canonical string form of the scope, which keeps
// the two mutually exclusive scope kinds under one constraint.
type PostgresActivityProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityProgressStore creates a new PostgreSQL
// implementation of the ActivityProgressStore interface. If logger is
// nil, a default logger will be used.
func NewPostgresActivityProgressStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresActivityProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_progress_store")),
	}
}

// Ensure PostgresActivityProgressStore implements store.ActivityProgressStore
var _ store.ActivityProgressStore = (*PostgresActivityProgressStore)(nil)

const activityProgressColumns = `learner_id, scope_key, hsk_level, part_number, topic_id,
	activity_id, is_completed, score, completed_at, created_at, updated_at`

// Get implements store.ActivityProgressStore.Get
func (s *PostgresActivityProgressStore) Get(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
) (*domain.ActivityProgress, error) {
	query := `SELECT ` + activityProgressColumns + `
		FROM activity_progress
		WHERE learner_id = $1 AND scope_key = $2 AND activity_id = $3`

	row := s.db.QueryRowContext(ctx, query, learnerID, scope.Key(), activityID)
	progress, err := scanActivityProgress(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrActivityProgressNotFound
		}
		return nil, MapError(err)
	}

	return progress, nil
}

// Create implements store.ActivityProgressStore.Create
// Returns store.ErrDuplicate if a record already exists for the triple,
// so the caller can re-read and retry as an update.
func (s *PostgresActivityProgressStore) Create(
	ctx context.Context,
	progress *domain.ActivityProgress,
) error {
	if err := progress.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO activity_progress (` + activityProgressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		progress.LearnerID,
		progress.Scope.Key(),
		nullableInt(progress.Scope.HSKLevel),
		nullableInt(progress.Scope.PartNumber),
		nullableInt64(progress.Scope.TopicID),
		progress.ActivityID,
		progress.IsCompleted,
		progress.Score,
		nullableTime(progress.CompletedAt),
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// Update implements store.ActivityProgressStore.Update
func (s *PostgresActivityProgressStore) Update(
	ctx context.Context,
	progress *domain.ActivityProgress,
) error {
	if err := progress.Validate(); err != nil {
		return err
	}

	query := `UPDATE activity_progress
		SET is_completed = $4, score = $5, completed_at = $6, updated_at = $7
		WHERE learner_id = $1 AND scope_key = $2 AND activity_id = $3`

	result, err := s.db.ExecContext(ctx, query,
		progress.LearnerID,
		progress.Scope.Key(),
		progress.ActivityID,
		progress.IsCompleted,
		progress.Score,
		nullableTime(progress.CompletedAt),
		progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "activity progress")
}

// ListCompleted implements store.ActivityProgressStore.ListCompleted
func (s *PostgresActivityProgressStore) ListCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) ([]*domain.ActivityProgress, error) {
	query := `SELECT ` + activityProgressColumns + `
		FROM activity_progress
		WHERE learner_id = $1 AND scope_key = $2 AND is_completed
		ORDER BY completed_at ASC`

	rows, err := s.db.QueryContext(ctx, query, learnerID, scope.Key())
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var completed []*domain.ActivityProgress
	for rows.Next() {
		progress, err := scanActivityProgress(rows)
		if err != nil {
			return nil, MapError(err)
		}
		completed = append(completed, progress)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return completed, nil
}

// CountCompleted implements store.ActivityProgressStore.CountCompleted
func (s *PostgresActivityProgressStore) CountCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) (int, error) {
	query := `SELECT COUNT(*)
		FROM activity_progress
		WHERE learner_id = $1 AND scope_key = $2 AND is_completed`

	var count int
	if err := s.db.QueryRowContext(ctx, query, learnerID, scope.Key()).Scan(&count); err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.ActivityProgressStore.WithTx
func (s *PostgresActivityProgressStore) WithTx(tx *sql.Tx) store.ActivityProgressStore {
	return &PostgresActivityProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanActivityProgress(row rowScanner) (*domain.ActivityProgress, error) {
	var progress domain.ActivityProgress
	var scopeKey string
	var hskLevel, partNumber sql.NullInt64
	var topicID sql.NullInt64
	var score sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(
		&progress.LearnerID,
		&scopeKey,
		&hskLevel,
		&partNumber,
		&topicID,
		&progress.ActivityID,
		&progress.IsCompleted,
		&score,
		&completedAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// scope_key is derived from the scope columns; the columns are the
	// source of truth when reading back.
	_ = scopeKey
	if topicID.Valid {
		progress.Scope = domain.TopicScope(topicID.Int64)
	} else {
		progress.Scope = domain.LevelScope(int(hskLevel.Int64), int(partNumber.Int64))
	}
	if score.Valid {
		v := int(score.Int64)
		progress.Score = &v
	}
	if completedAt.Valid {
		progress.CompletedAt = completedAt.Time
	}

	return &progress, nil
}
