package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hanlearn/hanlearn-api/internal/api"
	apiMiddleware "github.com/hanlearn/hanlearn-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Trace IDs for log and error correlation

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	activityHandler := api.NewActivityHandler(app.tracker, app.logger)
	progressHandler := api.NewProgressHandler(app.gateResolver, app.aggregator, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// All progression endpoints require an authenticated learner.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Word review endpoints
			r.Post("/reviews", reviewHandler.SubmitReview)
			r.Get("/reviews/due", reviewHandler.GetDueWords)

			// Activity progress endpoints
			r.Post("/activities/complete", activityHandler.CompleteActivity)
			r.Get("/activities", activityHandler.ListCompleted)
			r.Post("/activities/vocabulary/check", activityHandler.CheckVocabulary)

			// Gating and progress rollups
			r.Get("/units/{id}/access", progressHandler.CheckUnitAccess)
			r.Get("/progress/summary", progressHandler.GetSummary)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
