package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// mockTracker is a mock implementation of the progress.Tracker interface
type mockTracker struct {
	markCompletedFn func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope, activityID string, score *int) (*domain.ActivityProgress, error)
	isCompletedFn   func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope, activityID string) (bool, error)
	countFn         func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) (int, error)
	listFn          func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) ([]*domain.ActivityProgress, error)
	checkVocabFn    func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope, wordIDs []int64) (bool, error)
}

func (m *mockTracker) MarkCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
	score *int,
) (*domain.ActivityProgress, error) {
	return m.markCompletedFn(ctx, learnerID, scope, activityID, score)
}

func (m *mockTracker) IsCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	activityID string,
) (bool, error) {
	return m.isCompletedFn(ctx, learnerID, scope, activityID)
}

func (m *mockTracker) CountCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) (int, error) {
	return m.countFn(ctx, learnerID, scope)
}

func (m *mockTracker) ListCompleted(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) ([]*domain.ActivityProgress, error) {
	return m.listFn(ctx, learnerID, scope)
}

func (m *mockTracker) CheckAndMarkVocabulary(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
	wordIDs []int64,
) (bool, error) {
	return m.checkVocabFn(ctx, learnerID, scope, wordIDs)
}

func TestCompleteActivityHandler(t *testing.T) {
	learnerID := uuid.New()
	now := time.Now().UTC()

	completed := &domain.ActivityProgress{
		LearnerID:   learnerID,
		Scope:       domain.LevelScope(1, 2),
		ActivityID:  domain.ActivityListening,
		IsCompleted: true,
		CompletedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tests := []struct {
		name           string
		learnerInCtx   uuid.UUID
		body           string
		serviceResult  *domain.ActivityProgress
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			learnerInCtx:   learnerID,
			body:           `{"scope": {"hsk_level": 1, "part_number": 2}, "activity_id": "listening"}`,
			serviceResult:  completed,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Learner ID",
			learnerInCtx:   uuid.Nil,
			body:           `{"scope": {"hsk_level": 1, "part_number": 2}, "activity_id": "listening"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Activity ID",
			learnerInCtx:   learnerID,
			body:           `{"scope": {"hsk_level": 1, "part_number": 2}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Score Out Of Range",
			learnerInCtx:   learnerID,
			body:           `{"scope": {"topic_id": 7}, "activity_id": "quiz", "score": 150}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Scope From Service",
			learnerInCtx:   learnerID,
			body:           `{"scope": {}, "activity_id": "listening"}`,
			serviceError:   domain.ErrUnknownScope,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tracker := &mockTracker{
				markCompletedFn: func(
					ctx context.Context,
					learnerID uuid.UUID,
					scope domain.Scope,
					activityID string,
					score *int,
				) (*domain.ActivityProgress, error) {
					return tc.serviceResult, tc.serviceError
				},
			}

			handler := NewActivityHandler(tracker, discardLogger())

			req := httptest.NewRequest(
				"POST", "/api/activities/complete", bytes.NewBufferString(tc.body))
			if tc.learnerInCtx != uuid.Nil {
				req = withLearner(req, tc.learnerInCtx)
			}

			rr := httptest.NewRecorder()
			handler.CompleteActivity(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus == http.StatusOK {
				var response ActivityProgressResponse
				if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode response body: %v", err)
				}
				if !response.IsCompleted {
					t.Error("expected completed activity in response")
				}
				if response.ActivityID != domain.ActivityListening {
					t.Errorf("wrong activity ID: got %s", response.ActivityID)
				}
			}
		})
	}
}

func TestCheckVocabularyHandler(t *testing.T) {
	learnerID := uuid.New()

	t.Run("forwards scope and word IDs", func(t *testing.T) {
		var gotScope domain.Scope
		var gotWordIDs []int64
		tracker := &mockTracker{
			checkVocabFn: func(
				ctx context.Context,
				learnerID uuid.UUID,
				scope domain.Scope,
				wordIDs []int64,
			) (bool, error) {
				gotScope = scope
				gotWordIDs = wordIDs
				return true, nil
			},
		}

		handler := NewActivityHandler(tracker, discardLogger())

		body := `{"scope": {"topic_id": 7}, "word_ids": [1, 2, 3]}`
		req := withLearner(
			httptest.NewRequest(
				"POST", "/api/activities/vocabulary/check", bytes.NewBufferString(body)),
			learnerID)
		rr := httptest.NewRecorder()
		handler.CheckVocabulary(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v", rr.Code)
		}

		var response VocabularyCheckResponse
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if !response.Completed {
			t.Error("expected completed=true in response")
		}
		if gotScope.TopicID != 7 {
			t.Errorf("scope not forwarded: %+v", gotScope)
		}
		if len(gotWordIDs) != 3 {
			t.Errorf("word IDs not forwarded: %v", gotWordIDs)
		}
	})

	t.Run("incomplete result is reported", func(t *testing.T) {
		tracker := &mockTracker{
			checkVocabFn: func(
				ctx context.Context,
				learnerID uuid.UUID,
				scope domain.Scope,
				wordIDs []int64,
			) (bool, error) {
				return false, nil
			},
		}

		handler := NewActivityHandler(tracker, discardLogger())

		body := `{"scope": {"hsk_level": 1, "part_number": 1}, "word_ids": [1]}`
		req := withLearner(
			httptest.NewRequest(
				"POST", "/api/activities/vocabulary/check", bytes.NewBufferString(body)),
			learnerID)
		rr := httptest.NewRecorder()
		handler.CheckVocabulary(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v", rr.Code)
		}

		var response VocabularyCheckResponse
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if response.Completed {
			t.Error("expected completed=false in response")
		}
	})
}

func TestListCompletedHandler(t *testing.T) {
	learnerID := uuid.New()
	now := time.Now().UTC()

	tracker := &mockTracker{
		listFn: func(
			ctx context.Context,
			learnerID uuid.UUID,
			scope domain.Scope,
		) ([]*domain.ActivityProgress, error) {
			return []*domain.ActivityProgress{
				{
					LearnerID:   learnerID,
					Scope:       scope,
					ActivityID:  domain.ActivityQuiz,
					IsCompleted: true,
					CompletedAt: now,
				},
			}, nil
		},
	}

	handler := NewActivityHandler(tracker, discardLogger())

	req := withLearner(
		httptest.NewRequest("GET", "/api/activities?topic_id=7", nil), learnerID)
	rr := httptest.NewRecorder()
	handler.ListCompleted(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v", rr.Code)
	}

	var response ActivityListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if response.Count != 1 {
		t.Errorf("expected 1 activity, got %d", response.Count)
	}
}
