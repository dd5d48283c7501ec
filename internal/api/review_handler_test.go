package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/review"
)

// mockReviewService is a mock implementation of the ReviewService interface
type mockReviewService struct {
	submitReviewFn func(ctx context.Context, learnerID uuid.UUID, wordID int64, rating domain.Rating) (*domain.WordProgress, error)
	getDueWordsFn  func(ctx context.Context, learnerID uuid.UUID, scope *domain.Scope, limit int) ([]*domain.WordProgress, error)
}

func (m *mockReviewService) SubmitReview(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID int64,
	rating domain.Rating,
) (*domain.WordProgress, error) {
	return m.submitReviewFn(ctx, learnerID, wordID, rating)
}

func (m *mockReviewService) GetDueWords(
	ctx context.Context,
	learnerID uuid.UUID,
	scope *domain.Scope,
	limit int,
) ([]*domain.WordProgress, error) {
	return m.getDueWordsFn(ctx, learnerID, scope, limit)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withLearner(req *http.Request, learnerID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.LearnerIDContextKey, learnerID)
	return req.WithContext(ctx)
}

func sampleProgress(learnerID uuid.UUID, wordID int64) *domain.WordProgress {
	now := time.Now().UTC()
	return &domain.WordProgress{
		LearnerID:          learnerID,
		WordID:             wordID,
		Status:             domain.WordStatusLearning,
		IntervalDays:       2,
		ConsecutiveCorrect: 1,
		ReviewCount:        1,
		CorrectCount:       1,
		LastReviewedAt:     now,
		NextReviewDate:     now.AddDate(0, 0, 2),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestSubmitReviewHandler(t *testing.T) {
	learnerID := uuid.New()

	tests := []struct {
		name           string
		learnerInCtx   uuid.UUID
		body           string
		serviceResult  *domain.WordProgress
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			learnerInCtx:   learnerID,
			body:           `{"word_id": 42, "rating": "easy"}`,
			serviceResult:  sampleProgress(learnerID, 42),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Learner ID",
			learnerInCtx:   uuid.Nil,
			body:           `{"word_id": 42, "rating": "easy"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed JSON",
			learnerInCtx:   learnerID,
			body:           `{"word_id": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Rating Rejected By Validation",
			learnerInCtx:   learnerID,
			body:           `{"word_id": 42, "rating": "perfect"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Word ID",
			learnerInCtx:   learnerID,
			body:           `{"rating": "easy"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Word Not In Catalog",
			learnerInCtx:   learnerID,
			body:           `{"word_id": 999, "rating": "easy"}`,
			serviceError:   review.ErrWordNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				submitReviewFn: func(
					ctx context.Context,
					learnerID uuid.UUID,
					wordID int64,
					rating domain.Rating,
				) (*domain.WordProgress, error) {
					return tc.serviceResult, tc.serviceError
				},
			}

			handler := NewReviewHandler(mockService, discardLogger())

			req := httptest.NewRequest("POST", "/api/reviews", bytes.NewBufferString(tc.body))
			if tc.learnerInCtx != uuid.Nil {
				req = withLearner(req, tc.learnerInCtx)
			}

			rr := httptest.NewRecorder()
			handler.SubmitReview(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus == http.StatusOK {
				var response WordProgressResponse
				if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode response body: %v", err)
				}
				if response.WordID != 42 {
					t.Errorf("wrong word ID in response: got %d want 42", response.WordID)
				}
				if response.Status != string(domain.WordStatusLearning) {
					t.Errorf("wrong status in response: got %s", response.Status)
				}
			}
		})
	}
}

func TestGetDueWordsHandler(t *testing.T) {
	learnerID := uuid.New()

	t.Run("returns due words with count", func(t *testing.T) {
		mockService := &mockReviewService{
			getDueWordsFn: func(
				ctx context.Context,
				learnerID uuid.UUID,
				scope *domain.Scope,
				limit int,
			) ([]*domain.WordProgress, error) {
				return []*domain.WordProgress{
					sampleProgress(learnerID, 1),
					sampleProgress(learnerID, 2),
				}, nil
			},
		}

		handler := NewReviewHandler(mockService, discardLogger())

		req := withLearner(httptest.NewRequest("GET", "/api/reviews/due", nil), learnerID)
		rr := httptest.NewRecorder()
		handler.GetDueWords(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}

		var response DueWordsResponse
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if response.Count != 2 || len(response.Words) != 2 {
			t.Errorf("expected 2 due words, got count=%d len=%d", response.Count, len(response.Words))
		}
	})

	t.Run("scope is forwarded to the service", func(t *testing.T) {
		var gotScope *domain.Scope
		var gotLimit int
		mockService := &mockReviewService{
			getDueWordsFn: func(
				ctx context.Context,
				learnerID uuid.UUID,
				scope *domain.Scope,
				limit int,
			) ([]*domain.WordProgress, error) {
				gotScope = scope
				gotLimit = limit
				return nil, nil
			},
		}

		handler := NewReviewHandler(mockService, discardLogger())

		req := withLearner(
			httptest.NewRequest("GET", "/api/reviews/due?hsk_level=2&part_number=3&limit=10", nil),
			learnerID)
		rr := httptest.NewRecorder()
		handler.GetDueWords(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v", rr.Code)
		}
		if gotScope == nil || gotScope.HSKLevel != 2 || gotScope.PartNumber != 3 {
			t.Errorf("scope not forwarded: %+v", gotScope)
		}
		if gotLimit != 10 {
			t.Errorf("limit not forwarded: %d", gotLimit)
		}
	})

	t.Run("invalid scope combination is rejected", func(t *testing.T) {
		mockService := &mockReviewService{
			getDueWordsFn: func(
				ctx context.Context,
				learnerID uuid.UUID,
				scope *domain.Scope,
				limit int,
			) ([]*domain.WordProgress, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		handler := NewReviewHandler(mockService, discardLogger())

		req := withLearner(
			httptest.NewRequest("GET", "/api/reviews/due?hsk_level=2&part_number=3&topic_id=7", nil),
			learnerID)
		rr := httptest.NewRecorder()
		handler.GetDueWords(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("handler returned wrong status code: got %v want %v",
				rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		mockService := &mockReviewService{
			getDueWordsFn: func(
				ctx context.Context,
				learnerID uuid.UUID,
				scope *domain.Scope,
				limit int,
			) ([]*domain.WordProgress, error) {
				return nil, nil
			},
		}

		handler := NewReviewHandler(mockService, discardLogger())

		req := withLearner(httptest.NewRequest("GET", "/api/reviews/due?limit=-1", nil), learnerID)
		rr := httptest.NewRecorder()
		handler.GetDueWords(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("handler returned wrong status code: got %v", rr.Code)
		}
	})
}
