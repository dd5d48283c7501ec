package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

func TestApplyRating(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("nil progress is rejected", func(t *testing.T) {
		_, err := service.ApplyRating(nil, domain.RatingEasy, now)
		if !errors.Is(err, ErrNilProgress) {
			t.Errorf("Expected ErrNilProgress, got %v", err)
		}
	})

	t.Run("invalid rating is rejected", func(t *testing.T) {
		progress, err := domain.NewWordProgress(uuid.New(), 1)
		if err != nil {
			t.Fatalf("Failed to create progress: %v", err)
		}

		_, err = service.ApplyRating(progress, domain.Rating("perfect"), now)
		if !errors.Is(err, domain.ErrInvalidRating) {
			t.Errorf("Expected ErrInvalidRating, got %v", err)
		}
	})

	t.Run("valid rating produces an updated copy", func(t *testing.T) {
		progress, err := domain.NewWordProgress(uuid.New(), 1)
		if err != nil {
			t.Fatalf("Failed to create progress: %v", err)
		}

		next, err := service.ApplyRating(progress, domain.RatingEasy, now)
		if err != nil {
			t.Fatalf("ApplyRating failed: %v", err)
		}
		if next == progress {
			t.Error("Expected a new record, got the same pointer")
		}
		if next.ReviewCount != 1 {
			t.Errorf("Expected review count 1, got %d", next.ReviewCount)
		}
		if err := next.Validate(); err != nil {
			t.Errorf("Updated record fails validation: %v", err)
		}
	})
}

func TestServiceWithCustomParams(t *testing.T) {
	t.Parallel()
	params := NewParams(ParamsConfig{
		FirstReviewEasyDays: 5,
	})
	service := NewServiceWithParams(params)
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	progress, err := domain.NewWordProgress(uuid.New(), 1)
	if err != nil {
		t.Fatalf("Failed to create progress: %v", err)
	}

	next, err := service.ApplyRating(progress, domain.RatingEasy, now)
	if err != nil {
		t.Fatalf("ApplyRating failed: %v", err)
	}

	if next.IntervalDays != 5 {
		t.Errorf("Expected custom first-review interval 5, got %d", next.IntervalDays)
	}

	// Overridden field changes, the rest keep their defaults.
	defaults := NewDefaultParams()
	if params.EasyGrowthFactor != defaults.EasyGrowthFactor {
		t.Errorf("Expected default easy factor %f, got %f",
			defaults.EasyGrowthFactor, params.EasyGrowthFactor)
	}
}
