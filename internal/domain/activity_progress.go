package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity identifiers recognized by the progress tracker. The
// vocabulary activity is synthetic: it is never completed directly by a
// learner but derived from word review state by the auto-detection rule.
const (
	ActivityVocabulary = "vocabulary"
	ActivityListening  = "listening"
	ActivityReading    = "reading"
	ActivityWriting    = "writing"
	ActivityQuiz       = "quiz"
)

// IsValidActivity reports whether the given activity ID is recognized.
func IsValidActivity(activityID string) bool {
	switch activityID {
	case ActivityVocabulary, ActivityListening, ActivityReading, ActivityWriting, ActivityQuiz:
		return true
	default:
		return false
	}
}

// Scope is the grouping key under which activities are tracked: either
// an (HSK level, part number) pair or a topic identifier, never both.
type Scope struct {
	HSKLevel   int   `json:"hsk_level,omitempty"`
	PartNumber int   `json:"part_number,omitempty"`
	TopicID    int64 `json:"topic_id,omitempty"`
}

// LevelScope builds a scope for a level part.
func LevelScope(level, part int) Scope {
	return Scope{HSKLevel: level, PartNumber: part}
}

// TopicScope builds a scope for a topic.
func TopicScope(topicID int64) Scope {
	return Scope{TopicID: topicID}
}

// IsTopic reports whether the scope identifies a topic.
func (s Scope) IsTopic() bool {
	return s.TopicID > 0
}

// Validate checks that exactly one scope kind is set.
func (s Scope) Validate() error {
	hasLevel := s.HSKLevel > 0 && s.PartNumber > 0
	hasTopic := s.TopicID > 0

	if hasLevel == hasTopic {
		return ErrUnknownScope
	}

	return nil
}

// Key returns the canonical string form of the scope, used as part of
// the activity progress natural key.
func (s Scope) Key() string {
	if s.IsTopic() {
		return fmt.Sprintf("topic:%d", s.TopicID)
	}
	return fmt.Sprintf("level:%d:%d", s.HSKLevel, s.PartNumber)
}

// Validation errors for ActivityProgress.
var (
	ErrEmptyActivityLearnerID = errors.New("activity progress learner ID cannot be empty")
	ErrEmptyActivityID        = errors.New("activity progress activity ID cannot be empty")
	ErrCompletedAtMissing     = errors.New("completed activity must have a completion timestamp")
)

// ActivityProgress records whether a learner has completed one activity
// within a scope. One record exists per (learner, scope, activity);
// completion is monotonic: CompletedAt is set exactly once when
// IsCompleted transitions to true and is never cleared.
type ActivityProgress struct {
	LearnerID   uuid.UUID `json:"learner_id"`
	Scope       Scope     `json:"scope"`
	ActivityID  string    `json:"activity_id"`
	IsCompleted bool      `json:"is_completed"`
	Score       *int      `json:"score,omitempty"` // Present only for scored activities
	CompletedAt time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewActivityProgress creates an incomplete progress record for a
// learner, scope and activity.
func NewActivityProgress(learnerID uuid.UUID, scope Scope, activityID string) (*ActivityProgress, error) {
	now := time.Now().UTC()
	progress := &ActivityProgress{
		LearnerID:  learnerID,
		Scope:      scope,
		ActivityID: activityID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks the ActivityProgress invariants.
func (p *ActivityProgress) Validate() error {
	if p.LearnerID == uuid.Nil {
		return ErrEmptyActivityLearnerID
	}

	if err := p.Scope.Validate(); err != nil {
		return err
	}

	if p.ActivityID == "" {
		return ErrEmptyActivityID
	}

	if !IsValidActivity(p.ActivityID) {
		return fmt.Errorf("%w: %s", ErrUnknownActivity, p.ActivityID)
	}

	if p.IsCompleted && p.CompletedAt.IsZero() {
		return ErrCompletedAtMissing
	}

	return nil
}
