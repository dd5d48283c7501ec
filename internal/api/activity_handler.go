package api

import (
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
)

// CompleteActivityRequest represents the request body for marking an
// activity completed.
type CompleteActivityRequest struct {
	Scope      ScopeRequest `json:"scope"`
	ActivityID string       `json:"activity_id" validate:"required"`
	Score      *int         `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
}

// VocabularyCheckRequest represents the request body for running the
// vocabulary auto-detection rule over a scope's word list.
type VocabularyCheckRequest struct {
	Scope   ScopeRequest `json:"scope"`
	WordIDs []int64      `json:"word_ids" validate:"omitempty,dive,gt=0"`
}

// VocabularyCheckResponse reports the outcome of an auto-detection run.
type VocabularyCheckResponse struct {
	Completed bool `json:"completed"`
}

// ActivityHandler handles activity progress HTTP requests.
type ActivityHandler struct {
	tracker progress.Tracker
	logger  *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(tracker progress.Tracker, logger *slog.Logger) *ActivityHandler {
	if tracker == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tracker cannot be nil for ActivityHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ActivityHandler")
	}

	return &ActivityHandler{
		tracker: tracker,
		logger:  logger.With(slog.String("component", "activity_handler")),
	}
}

// CompleteActivity handles POST /activities/complete requests. The
// operation is idempotent; repeated calls return the existing record.
func (h *ActivityHandler) CompleteActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := getLearnerID(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	var req CompleteActivityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	record, err := h.tracker.MarkCompleted(
		r.Context(),
		learnerID,
		req.Scope.ToScope(),
		req.ActivityID,
		req.Score,
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to complete activity"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("activity completed",
		slog.String("learner_id", learnerID.String()),
		slog.String("scope", record.Scope.Key()),
		slog.String("activity_id", record.ActivityID))
	shared.RespondWithJSON(w, r, http.StatusOK, activityToResponse(record))
}

// ActivityListResponse represents the response body for a completed
// activity listing.
type ActivityListResponse struct {
	Activities []ActivityProgressResponse `json:"activities"`
	Count      int                        `json:"count"`
}

// ListCompleted handles GET /activities requests. The scope comes from
// query parameters and is required.
func (h *ActivityHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := getLearnerID(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	scope, err := parseScopeQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	records, err := h.tracker.ListCompleted(r.Context(), learnerID, scope)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list activities"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := ActivityListResponse{
		Activities: make([]ActivityProgressResponse, 0, len(records)),
		Count:      len(records),
	}
	for _, record := range records {
		response.Activities = append(response.Activities, activityToResponse(record))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CheckVocabulary handles POST /activities/vocabulary/check requests.
// It runs the auto-detection rule for the scope and reports whether the
// vocabulary activity is complete after the check.
func (h *ActivityHandler) CheckVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := getLearnerID(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	var req VocabularyCheckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	completed, err := h.tracker.CheckAndMarkVocabulary(
		r.Context(),
		learnerID,
		req.Scope.ToScope(),
		req.WordIDs,
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to check vocabulary completion"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("vocabulary check finished",
		slog.String("learner_id", learnerID.String()),
		slog.Int("word_count", len(req.WordIDs)),
		slog.Bool("completed", completed))
	shared.RespondWithJSON(w, r, http.StatusOK, VocabularyCheckResponse{Completed: completed})
}
