package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
)

// UnitAccessResponse represents the gate decision for a content unit.
type UnitAccessResponse struct {
	UnitID  string `json:"unit_id"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// ProgressHandler handles gate checks and progress summary requests.
type ProgressHandler struct {
	gateResolver progress.GateResolver
	aggregator   progress.Aggregator
	logger       *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(
	gateResolver progress.GateResolver,
	aggregator progress.Aggregator,
	logger *slog.Logger,
) *ProgressHandler {
	if gateResolver == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("gateResolver cannot be nil for ProgressHandler")
	}
	if aggregator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("aggregator cannot be nil for ProgressHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		gateResolver: gateResolver,
		aggregator:   aggregator,
		logger:       logger.With(slog.String("component", "progress_handler")),
	}
}

// CheckUnitAccess handles GET /units/{id}/access requests. It evaluates
// the prerequisite gate for the unit and reports the decision without
// mutating any state.
func (h *ProgressHandler) CheckUnitAccess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := getLearnerID(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	pathUnitID := chi.URLParam(r, "id")
	if pathUnitID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unit ID is required")
		return
	}

	unitID, err := uuid.Parse(pathUnitID)
	if err != nil {
		log.Warn("invalid unit ID format", slog.String("unit_id", pathUnitID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid unit ID format")
		return
	}

	decision, err := h.gateResolver.CanAccess(r.Context(), learnerID, unitID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to check unit access"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("unit access evaluated",
		slog.String("learner_id", learnerID.String()),
		slog.String("unit_id", unitID.String()),
		slog.Bool("allowed", decision.Allowed),
		slog.String("reason", string(decision.Reason)))
	shared.RespondWithJSON(w, r, http.StatusOK, UnitAccessResponse{
		UnitID:  unitID.String(),
		Allowed: decision.Allowed,
		Reason:  string(decision.Reason),
	})
}

// GetSummary handles GET /progress/summary requests. The scope comes
// from query parameters and is required.
func (h *ProgressHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.aggregator.Summarize(r.Context(), learnerID, scope)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build progress summary"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("progress summary built",
		slog.String("learner_id", learnerID.String()),
		slog.String("scope", scope.Key()))
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
