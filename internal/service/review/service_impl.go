package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/domain/srs"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	progressStore store.WordProgressStore
	vocabulary    store.VocabularyCatalog
	srsService    srs.Service
	logger        *slog.Logger
	now           func() time.Time // Injectable for testing
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	progressStore store.WordProgressStore,
	vocabulary store.VocabularyCatalog,
	srsService srs.Service,
	logger *slog.Logger,
) ReviewService {
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if vocabulary == nil {
		panic("vocabulary cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		progressStore: progressStore,
		vocabulary:    vocabulary,
		srsService:    srsService,
		logger:        logger.With(slog.String("component", "review_service")),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID int64,
	rating domain.Rating,
) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject bad input before touching any state.
	if !domain.IsValidRating(rating) {
		log.Warn("invalid review rating",
			slog.String("learner_id", learnerID.String()),
			slog.Int64("word_id", wordID),
			slog.String("rating", string(rating)))
		return nil, ErrInvalidRating
	}

	exists, err := s.vocabulary.WordExists(ctx, wordID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "submit_review",
			Message:   "failed to check vocabulary catalog",
			Err:       err,
		}
	}
	if !exists {
		log.Warn("review for unknown word",
			slog.String("learner_id", learnerID.String()),
			slog.Int64("word_id", wordID))
		return nil, ErrWordNotFound
	}

	progress, err := s.progressStore.Get(ctx, learnerID, wordID)
	created := false
	if err != nil {
		if !errors.Is(err, store.ErrWordProgressNotFound) {
			return nil, &ServiceError{
				Operation: "submit_review",
				Message:   "failed to load review state",
				Err:       err,
			}
		}
		// Lazy creation on first rating.
		progress, err = domain.NewWordProgress(learnerID, wordID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize review state: %w", err)
		}
		created = true
	}

	updated, err := s.srsService.ApplyRating(progress, rating, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to apply rating: %w", err)
	}

	if created {
		err = s.progressStore.Create(ctx, updated)
		if store.IsDuplicateError(err) {
			// Another device created the record between our read and
			// write. The race resolves as last write wins: retry as an
			// update of the row that beat us.
			log.Debug("review state created concurrently, retrying as update",
				slog.String("learner_id", learnerID.String()),
				slog.Int64("word_id", wordID))
			err = s.progressStore.Update(ctx, updated)
		}
	} else {
		err = s.progressStore.Update(ctx, updated)
	}
	if err != nil {
		return nil, &ServiceError{
			Operation: "submit_review",
			Message:   "failed to persist review state",
			Err:       err,
		}
	}

	log.Debug("review applied",
		slog.String("learner_id", learnerID.String()),
		slog.Int64("word_id", wordID),
		slog.String("rating", string(rating)),
		slog.String("status", string(updated.Status)),
		slog.Int("interval_days", updated.IntervalDays))

	return updated, nil
}

// GetDueWords implements ReviewService.GetDueWords.
func (s *reviewServiceImpl) GetDueWords(
	ctx context.Context,
	learnerID uuid.UUID,
	scope *domain.Scope,
	limit int,
) ([]*domain.WordProgress, error) {
	if scope != nil {
		if err := scope.Validate(); err != nil {
			return nil, err
		}
	}

	due, err := s.progressStore.ListDue(ctx, learnerID, scope, limit, s.now())
	if err != nil {
		return nil, &ServiceError{
			Operation: "get_due_words",
			Message:   "failed to list due words",
			Err:       err,
		}
	}

	return due, nil
}
