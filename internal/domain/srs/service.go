package srs

import (
	"errors"
	"time"

	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("word progress cannot be nil")
)

// Service defines the interface for the scheduling algorithm. It is a
// pure function of (current record, rating, now); persistence and
// side effects belong to the callers.
type Service interface {
	// ApplyRating computes the next review state for a word given a
	// learner's rating. Returns domain.ErrInvalidRating for values
	// outside the rating enum.
	ApplyRating(
		progress *domain.WordProgress,
		rating domain.Rating,
		now time.Time,
	) (*domain.WordProgress, error)
}

type defaultService struct {
	params *Params
}

// NewDefaultService creates an SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates an SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyRating implements the Service interface.
func (s *defaultService) ApplyRating(
	progress *domain.WordProgress,
	rating domain.Rating,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if !domain.IsValidRating(rating) {
		return nil, domain.ErrInvalidRating
	}

	return calculateNextProgress(progress, rating, now, s.params), nil
}
