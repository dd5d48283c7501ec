// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/service/review"
)

// SubmitReviewRequest represents the request body for rating a word.
type SubmitReviewRequest struct {
	WordID int64  `json:"word_id" validate:"required,gt=0"`
	Rating string `json:"rating"  validate:"required,oneof=easy hard forgot"`
}

// ReviewHandler handles word review HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /reviews requests. It applies the learner's
// rating to a word and returns the updated review state.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := getLearnerID(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	var req SubmitReviewRequest
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

	progress, err := h.reviewService.SubmitReview(
		r.Context(),
		learnerID,
		req.WordID,
		domain.Rating(req.Rating),
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("learner_id", learnerID.String()),
		slog.Int64("word_id", req.WordID),
		slog.String("rating", req.Rating),
		slog.String("status", string(progress.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, wordProgressToResponse(progress))
}

// DueWordsResponse represents the response body for a due-words query.
type DueWordsResponse struct {
	Words []WordProgressResponse `json:"words"`
	Count int                    `json:"count"`
}

// GetDueWords handles GET /reviews/due requests. An optional scope
// (hsk_level with part_number, or topic_id) narrows the result; an
// optional limit caps it.
func (h *ReviewHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
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

	// Scope is optional here: absent means all of the learner's words.
	var scopeFilter *domain.Scope
	if scope != (domain.Scope{}) {
		if err := scope.Validate(); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		scopeFilter = &scope
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	dueWords, err := h.reviewService.GetDueWords(r.Context(), learnerID, scopeFilter, limit)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get due words"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := DueWordsResponse{
		Words: make([]WordProgressResponse, 0, len(dueWords)),
		Count: len(dueWords),
	}
	for _, progress := range dueWords {
		response.Words = append(response.Words, wordProgressToResponse(progress))
	}

	log.Debug("due words retrieved",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", response.Count))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
