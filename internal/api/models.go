package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// getLearnerID extracts the authenticated learner's ID from the request
// context, where the auth middleware put it.
func getLearnerID(r *http.Request) (uuid.UUID, bool) {
	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	if !ok || learnerID == uuid.Nil {
		return uuid.Nil, false
	}
	return learnerID, true
}

// ScopeRequest carries a progress scope in request bodies. Exactly one
// of the topic or the level pair must be set; domain.Scope.Validate
// enforces that at the service boundary.
type ScopeRequest struct {
	HSKLevel   int   `json:"hsk_level,omitempty"`
	PartNumber int   `json:"part_number,omitempty"`
	TopicID    int64 `json:"topic_id,omitempty"`
}

// ToScope converts the request scope into its domain form.
func (s ScopeRequest) ToScope() domain.Scope {
	return domain.Scope{
		HSKLevel:   s.HSKLevel,
		PartNumber: s.PartNumber,
		TopicID:    s.TopicID,
	}
}

// parseScopeQuery reads a scope from URL query parameters
// (hsk_level, part_number, topic_id). Used by the GET endpoints.
func parseScopeQuery(r *http.Request) (domain.Scope, error) {
	var scope domain.Scope

	query := r.URL.Query()
	for _, param := range []struct {
		name string
		dst  *int
	}{
		{"hsk_level", &scope.HSKLevel},
		{"part_number", &scope.PartNumber},
	} {
		raw := query.Get(param.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Scope{}, fmt.Errorf("%w: invalid %s", domain.ErrUnknownScope, param.name)
		}
		*param.dst = value
	}

	if raw := query.Get("topic_id"); raw != "" {
		topicID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Scope{}, fmt.Errorf("%w: invalid topic_id", domain.ErrUnknownScope)
		}
		scope.TopicID = topicID
	}

	return scope, nil
}

// WordProgressResponse represents the review state returned for a word.
type WordProgressResponse struct {
	LearnerID          string     `json:"learner_id"`
	WordID             int64      `json:"word_id"`
	Status             string     `json:"status"`
	IntervalDays       int        `json:"interval_days"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
	ReviewCount        int        `json:"review_count"`
	CorrectCount       int        `json:"correct_count"`
	WrongCount         int        `json:"wrong_count"`
	LastReviewedAt     *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewDate     time.Time  `json:"next_review_date"`
}

// wordProgressToResponse converts a domain.WordProgress to its response form.
func wordProgressToResponse(progress *domain.WordProgress) WordProgressResponse {
	response := WordProgressResponse{
		LearnerID:          progress.LearnerID.String(),
		WordID:             progress.WordID,
		Status:             string(progress.Status),
		IntervalDays:       progress.IntervalDays,
		ConsecutiveCorrect: progress.ConsecutiveCorrect,
		ReviewCount:        progress.ReviewCount,
		CorrectCount:       progress.CorrectCount,
		WrongCount:         progress.WrongCount,
		NextReviewDate:     progress.NextReviewDate,
	}
	if progress.Seen() {
		lastReviewed := progress.LastReviewedAt
		response.LastReviewedAt = &lastReviewed
	}
	return response
}

// ActivityProgressResponse represents one tracked activity for a learner.
type ActivityProgressResponse struct {
	LearnerID   string       `json:"learner_id"`
	Scope       domain.Scope `json:"scope"`
	ActivityID  string       `json:"activity_id"`
	IsCompleted bool         `json:"is_completed"`
	Score       *int         `json:"score,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// activityToResponse converts a domain.ActivityProgress to its response form.
func activityToResponse(progress *domain.ActivityProgress) ActivityProgressResponse {
	response := ActivityProgressResponse{
		LearnerID:   progress.LearnerID.String(),
		Scope:       progress.Scope,
		ActivityID:  progress.ActivityID,
		IsCompleted: progress.IsCompleted,
		Score:       progress.Score,
	}
	if !progress.CompletedAt.IsZero() {
		completedAt := progress.CompletedAt
		response.CompletedAt = &completedAt
	}
	return response
}
