package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
)

// mockGateResolver is a mock implementation of the progress.GateResolver interface
type mockGateResolver struct {
	canAccessFn func(ctx context.Context, learnerID, unitID uuid.UUID) (progress.AccessDecision, error)
}

func (m *mockGateResolver) CanAccess(
	ctx context.Context,
	learnerID, unitID uuid.UUID,
) (progress.AccessDecision, error) {
	return m.canAccessFn(ctx, learnerID, unitID)
}

// mockAggregator is a mock implementation of the progress.Aggregator interface
type mockAggregator struct {
	summarizeFn func(ctx context.Context, learnerID uuid.UUID, scope domain.Scope) (*progress.Summary, error)
}

func (m *mockAggregator) Summarize(
	ctx context.Context,
	learnerID uuid.UUID,
	scope domain.Scope,
) (*progress.Summary, error) {
	return m.summarizeFn(ctx, learnerID, scope)
}

// unitAccessRequest builds a chi-routed request with the unit ID path param set.
func unitAccessRequest(learnerID uuid.UUID, unitID string) *http.Request {
	req := httptest.NewRequest("GET", "/api/units/"+unitID+"/access", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", unitID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	return withLearner(req, learnerID)
}

func TestCheckUnitAccessHandler(t *testing.T) {
	learnerID := uuid.New()
	unitID := uuid.New()

	tests := []struct {
		name           string
		unitID         string
		decision       progress.AccessDecision
		serviceError   error
		expectedStatus int
		wantAllowed    bool
		wantReason     string
	}{
		{
			name:           "Allowed",
			unitID:         unitID.String(),
			decision:       progress.AccessDecision{Allowed: true, Reason: progress.ReasonAllowed},
			expectedStatus: http.StatusOK,
			wantAllowed:    true,
			wantReason:     "allowed",
		},
		{
			name:   "Denied By Prerequisite",
			unitID: unitID.String(),
			decision: progress.AccessDecision{
				Allowed: false,
				Reason:  progress.ReasonPrerequisiteIncomplete,
			},
			expectedStatus: http.StatusOK,
			wantAllowed:    false,
			wantReason:     "prerequisite_incomplete",
		},
		{
			name:           "Unit Not Found",
			unitID:         unitID.String(),
			serviceError:   progress.ErrUnitNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid Unit ID",
			unitID:         "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &mockGateResolver{
				canAccessFn: func(
					ctx context.Context,
					learnerID, unitID uuid.UUID,
				) (progress.AccessDecision, error) {
					return tc.decision, tc.serviceError
				},
			}
			aggregator := &mockAggregator{
				summarizeFn: func(
					ctx context.Context,
					learnerID uuid.UUID,
					scope domain.Scope,
				) (*progress.Summary, error) {
					return nil, nil
				},
			}

			handler := NewProgressHandler(resolver, aggregator, discardLogger())

			rr := httptest.NewRecorder()
			handler.CheckUnitAccess(rr, unitAccessRequest(learnerID, tc.unitID))

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus == http.StatusOK {
				var response UnitAccessResponse
				if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode response body: %v", err)
				}
				if response.Allowed != tc.wantAllowed {
					t.Errorf("wrong allowed flag: got %v want %v", response.Allowed, tc.wantAllowed)
				}
				if response.Reason != tc.wantReason {
					t.Errorf("wrong reason: got %s want %s", response.Reason, tc.wantReason)
				}
			}
		})
	}
}

func TestGetSummaryHandler(t *testing.T) {
	learnerID := uuid.New()

	resolver := &mockGateResolver{
		canAccessFn: func(
			ctx context.Context,
			learnerID, unitID uuid.UUID,
		) (progress.AccessDecision, error) {
			return progress.AccessDecision{}, nil
		},
	}
	aggregator := &mockAggregator{
		summarizeFn: func(
			ctx context.Context,
			learnerID uuid.UUID,
			scope domain.Scope,
		) (*progress.Summary, error) {
			return &progress.Summary{
				Scope:           scope,
				TotalWords:      10,
				LearnedWords:    5,
				PercentComplete: 50,
				DueCount:        2,
				CompletedCount:  3,
			}, nil
		},
	}

	handler := NewProgressHandler(resolver, aggregator, discardLogger())

	req := withLearner(
		httptest.NewRequest("GET", "/api/progress/summary?hsk_level=1&part_number=1", nil),
		learnerID)
	rr := httptest.NewRecorder()
	handler.GetSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v", rr.Code)
	}

	var response progress.Summary
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if response.TotalWords != 10 || response.PercentComplete != 50 {
		t.Errorf("unexpected summary: %+v", response)
	}
}
