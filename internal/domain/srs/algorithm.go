package srs

import (
	"time"

	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// calculateNewInterval determines the next review interval in days.
//
// Behavior by rating:
//   - Forgot: resets to the minimum interval regardless of any prior
//     streak. Forgetting always brings the schedule back to the floor.
//   - Hard: grows the previous interval by the hard factor, bounded by
//     the learning ceiling. A word cannot reach the mastery threshold
//     through hard ratings.
//   - Easy: grows the previous interval by the easy factor, unbounded.
//     The very first easy rating uses the configured first-review
//     interval instead, since there is no previous interval to grow.
//
// The result is always at least the minimum interval, so the next
// review date is never in the past after an update.
func calculateNewInterval(currentInterval int, rating domain.Rating, params *Params) int {
	switch rating {
	case domain.RatingForgot:
		return params.MinimumIntervalDays

	case domain.RatingHard:
		next := int(float64(currentInterval) * params.HardGrowthFactor)
		if next < params.MinimumIntervalDays {
			next = params.MinimumIntervalDays
		}
		if next > params.LearningCeilingDays {
			next = params.LearningCeilingDays
		}
		return next

	case domain.RatingEasy:
		if currentInterval == 0 {
			return params.FirstReviewEasyDays
		}
		next := int(float64(currentInterval) * params.EasyGrowthFactor)
		if next < params.MinimumIntervalDays {
			next = params.MinimumIntervalDays
		}
		return next
	}

	return params.MinimumIntervalDays
}

// calculateNewStatus determines the next mastery status.
//
// Transitions:
//   - Forgot always demotes to learning.
//   - Hard keeps a word in learning, except a mastered word regresses
//     to reviewing (previously mastered, being re-confirmed).
//   - Easy promotes to mastered once the new interval exceeds the
//     mastery threshold and the non-forgot streak is long enough.
//     Below the promotion bar, a word that was mastered before stays in
//     reviewing; everything else stays in learning.
func calculateNewStatus(
	current domain.WordStatus,
	rating domain.Rating,
	newInterval int,
	consecutiveCorrect int,
	params *Params,
) domain.WordStatus {
	switch rating {
	case domain.RatingForgot:
		return domain.WordStatusLearning

	case domain.RatingHard:
		if current == domain.WordStatusMastered {
			return domain.WordStatusReviewing
		}
		return domain.WordStatusLearning

	case domain.RatingEasy:
		if newInterval > params.MasteryThresholdDays && consecutiveCorrect >= params.MasteryStreak {
			return domain.WordStatusMastered
		}
		if current == domain.WordStatusMastered || current == domain.WordStatusReviewing {
			return domain.WordStatusReviewing
		}
		return domain.WordStatusLearning
	}

	return current
}

// calculateNextProgress creates a new WordProgress with updated values
// for the given rating. The original record is never mutated; callers
// persist the returned copy, and concurrent ratings for the same word
// resolve as last write wins.
func calculateNextProgress(
	progress *domain.WordProgress,
	rating domain.Rating,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := *progress

	next.ReviewCount++
	next.LastReviewedAt = now

	if rating == domain.RatingForgot {
		next.WrongCount++
		next.ConsecutiveCorrect = 0
	} else {
		next.CorrectCount++
		next.ConsecutiveCorrect++
	}

	next.IntervalDays = calculateNewInterval(progress.IntervalDays, rating, params)
	next.Status = calculateNewStatus(
		progress.Status,
		rating,
		next.IntervalDays,
		next.ConsecutiveCorrect,
		params,
	)
	next.NextReviewDate = now.AddDate(0, 0, next.IntervalDays)
	next.UpdatedAt = now

	return &next
}
