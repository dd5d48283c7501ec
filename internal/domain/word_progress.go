package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WordStatus represents a learner's mastery stage for a vocabulary word.
type WordStatus string

// Possible word status values.
//
// Reviewing is a distinct stage from Learning: it marks a word that was
// previously mastered and is currently being re-confirmed after a lapse
// or a hard rating.
const (
	WordStatusNew       WordStatus = "new"
	WordStatusLearning  WordStatus = "learning"
	WordStatusReviewing WordStatus = "reviewing"
	WordStatusMastered  WordStatus = "mastered"
)

// Rating represents a learner's qualitative answer to a word review.
type Rating string

// Possible rating values.
const (
	RatingEasy   Rating = "easy"
	RatingHard   Rating = "hard"
	RatingForgot Rating = "forgot"
)

// IsValidRating reports whether the given rating is a recognized value.
func IsValidRating(r Rating) bool {
	switch r {
	case RatingEasy, RatingHard, RatingForgot:
		return true
	default:
		return false
	}
}

// Validation errors for WordProgress.
var (
	ErrEmptyProgressLearnerID = errors.New("word progress learner ID cannot be empty")
	ErrEmptyProgressWordID    = errors.New("word progress word ID cannot be empty")
	ErrInvalidInterval        = errors.New("interval must be greater than or equal to 0")
	ErrCounterMismatch        = errors.New("review count must equal correct count plus wrong count")
)

// WordProgress tracks a learner's spaced repetition state for a single
// vocabulary word. One record exists per (learner, word) pair; it is
// created lazily on the first rating and never deleted, so the counters
// survive as review history.
type WordProgress struct {
	LearnerID          uuid.UUID  `json:"learner_id"`
	WordID             int64      `json:"word_id"`
	Status             WordStatus `json:"status"`
	IntervalDays       int        `json:"interval_days"`       // Current review interval in days
	ConsecutiveCorrect int        `json:"consecutive_correct"` // Non-forgot ratings in a row
	ReviewCount        int        `json:"review_count"`
	CorrectCount       int        `json:"correct_count"`
	WrongCount         int        `json:"wrong_count"`
	LastReviewedAt     time.Time  `json:"last_reviewed_at"` // Zero until the first rating
	NextReviewDate     time.Time  `json:"next_review_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewWordProgress creates the initial review state for a learner and word.
// New words are due immediately; the scheduler pushes the date forward on
// the first rating.
func NewWordProgress(learnerID uuid.UUID, wordID int64) (*WordProgress, error) {
	now := time.Now().UTC()
	progress := &WordProgress{
		LearnerID:      learnerID,
		WordID:         wordID,
		Status:         WordStatusNew,
		IntervalDays:   0,
		NextReviewDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks the WordProgress invariants. The counter identity
// reviewCount == correctCount + wrongCount must hold after every rating.
func (p *WordProgress) Validate() error {
	if p.LearnerID == uuid.Nil {
		return ErrEmptyProgressLearnerID
	}

	if p.WordID <= 0 {
		return ErrEmptyProgressWordID
	}

	if p.IntervalDays < 0 {
		return ErrInvalidInterval
	}

	switch p.Status {
	case WordStatusNew, WordStatusLearning, WordStatusReviewing, WordStatusMastered:
	default:
		return ErrInvalidWordStatus
	}

	if p.ReviewCount != p.CorrectCount+p.WrongCount {
		return ErrCounterMismatch
	}

	return nil
}

// IsDue reports whether the word is due for review at the given time.
func (p *WordProgress) IsDue(now time.Time) bool {
	return !now.Before(p.NextReviewDate)
}

// Seen reports whether the word has received at least one rating. Words
// that were only lazily materialized by a due-query are still unseen.
func (p *WordProgress) Seen() bool {
	return !p.LastReviewedAt.IsZero()
}
