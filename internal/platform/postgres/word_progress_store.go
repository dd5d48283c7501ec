package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PostgresWordProgressStore implements the store.WordProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresWordProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordProgressStore creates a new PostgreSQL implementation
// of the WordProgressStore interface. It accepts a database connection
// or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordProgressStore(db store.DBTX, logger *slog.Logger) *PostgresWordProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_progress_store")),
	}
}

// Ensure PostgresWordProgressStore implements store.WordProgressStore
var _ store.WordProgressStore = (*PostgresWordProgressStore)(nil)

const wordProgressColumns = `learner_id, word_id, status, interval_days, consecutive_correct,
	review_count, correct_count, wrong_count, last_reviewed_at, next_review_date,
	created_at, updated_at`

// Get implements store.WordProgressStore.Get
func (s *PostgresWordProgressStore) Get(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID int64,
) (*domain.WordProgress, error) {
	query := `SELECT ` + wordProgressColumns + `
		FROM word_progress
		WHERE learner_id = $1 AND word_id = $2`

	row := s.db.QueryRowContext(ctx, query, learnerID, wordID)
	progress, err := scanWordProgress(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrWordProgressNotFound
		}
		return nil, MapError(err)
	}

	return progress, nil
}

// GetBatch implements store.WordProgressStore.GetBatch
func (s *PostgresWordProgressStore) GetBatch(
	ctx context.Context,
	learnerID uuid.UUID,
	wordIDs []int64,
) (map[int64]*domain.WordProgress, error) {
	result := make(map[int64]*domain.WordProgress, len(wordIDs))
	if len(wordIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + wordProgressColumns + `
		FROM word_progress
		WHERE learner_id = $1 AND word_id = ANY($2)`

	// The pgx stdlib driver converts []int64 to a bigint array natively.
	rows, err := s.db.QueryContext(ctx, query, learnerID, wordIDs)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		progress, err := scanWordProgress(rows)
		if err != nil {
			return nil, MapError(err)
		}
		result[progress.WordID] = progress
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return result, nil
}

// Create implements store.WordProgressStore.Create
// Returns store.ErrDuplicate if a record already exists for the
// (learner, word) pair, so the caller can retry as an update.
func (s *PostgresWordProgressStore) Create(
	ctx context.Context,
	progress *domain.WordProgress,
) error {
	if err := progress.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO word_progress (` + wordProgressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		progress.LearnerID,
		progress.WordID,
		string(progress.Status),
		progress.IntervalDays,
		progress.ConsecutiveCorrect,
		progress.ReviewCount,
		progress.CorrectCount,
		progress.WrongCount,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewDate,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// Update implements store.WordProgressStore.Update
// The full row is overwritten: concurrent ratings for the same word
// resolve as last write wins, with no counter merging.
func (s *PostgresWordProgressStore) Update(
	ctx context.Context,
	progress *domain.WordProgress,
) error {
	if err := progress.Validate(); err != nil {
		return err
	}

	query := `UPDATE word_progress
		SET status = $3, interval_days = $4, consecutive_correct = $5,
			review_count = $6, correct_count = $7, wrong_count = $8,
			last_reviewed_at = $9, next_review_date = $10, updated_at = $11
		WHERE learner_id = $1 AND word_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		progress.LearnerID,
		progress.WordID,
		string(progress.Status),
		progress.IntervalDays,
		progress.ConsecutiveCorrect,
		progress.ReviewCount,
		progress.CorrectCount,
		progress.WrongCount,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewDate,
		progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "word progress")
}

// ListDue implements store.WordProgressStore.ListDue
func (s *PostgresWordProgressStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	scope *domain.Scope,
	limit int,
	now time.Time,
) ([]*domain.WordProgress, error) {
	query := `SELECT p.learner_id, p.word_id, p.status, p.interval_days, p.consecutive_correct,
			p.review_count, p.correct_count, p.wrong_count, p.last_reviewed_at, p.next_review_date,
			p.created_at, p.updated_at
		FROM word_progress p`
	args := []any{learnerID, now}

	if scope != nil {
		if scope.IsTopic() {
			query += ` JOIN words w ON w.id = p.word_id AND w.topic_id = $3`
			args = append(args, scope.TopicID)
		} else {
			query += ` JOIN words w ON w.id = p.word_id AND w.hsk_level = $3 AND w.part_number = $4`
			args = append(args, scope.HSKLevel, scope.PartNumber)
		}
	}

	query += ` WHERE p.learner_id = $1 AND p.next_review_date <= $2
		ORDER BY p.next_review_date ASC`

	if limit > 0 {
		query += ` LIMIT ` + itoa(limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var due []*domain.WordProgress
	for rows.Next() {
		progress, err := scanWordProgress(rows)
		if err != nil {
			return nil, MapError(err)
		}
		due = append(due, progress)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return due, nil
}

// CountByStatus implements store.WordProgressStore.CountByStatus
func (s *PostgresWordProgressStore) CountByStatus(
	ctx context.Context,
	learnerID uuid.UUID,
) (map[domain.WordStatus]int, error) {
	query := `SELECT status, COUNT(*)
		FROM word_progress
		WHERE learner_id = $1
		GROUP BY status`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.WordStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, MapError(err)
		}
		counts[domain.WordStatus(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return counts, nil
}

// CountDue implements store.WordProgressStore.CountDue
func (s *PostgresWordProgressStore) CountDue(
	ctx context.Context,
	learnerID uuid.UUID,
	now time.Time,
) (int, error) {
	query := `SELECT COUNT(*)
		FROM word_progress
		WHERE learner_id = $1 AND next_review_date <= $2`

	var count int
	if err := s.db.QueryRowContext(ctx, query, learnerID, now).Scan(&count); err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.WordProgressStore.WithTx
func (s *PostgresWordProgressStore) WithTx(tx *sql.Tx) store.WordProgressStore {
	return &PostgresWordProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWordProgress(row rowScanner) (*domain.WordProgress, error) {
	var progress domain.WordProgress
	var status string
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&progress.LearnerID,
		&progress.WordID,
		&status,
		&progress.IntervalDays,
		&progress.ConsecutiveCorrect,
		&progress.ReviewCount,
		&progress.CorrectCount,
		&progress.WrongCount,
		&lastReviewedAt,
		&progress.NextReviewDate,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	progress.Status = domain.WordStatus(status)
	if lastReviewedAt.Valid {
		progress.LastReviewedAt = lastReviewedAt.Time
	}

	return &progress, nil
}
