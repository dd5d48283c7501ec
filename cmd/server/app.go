package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hanlearn/hanlearn-api/internal/config"
	"github.com/hanlearn/hanlearn-api/internal/domain/srs"
	"github.com/hanlearn/hanlearn-api/internal/platform/postgres"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
	"github.com/hanlearn/hanlearn-api/internal/service/review"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	wordProgressStore     store.WordProgressStore
	activityProgressStore store.ActivityProgressStore
	vocabularyCatalog     store.VocabularyCatalog
	contentUnitCatalog    store.ContentUnitCatalog

	// Service interfaces
	jwtService    auth.JWTService
	srsService    srs.Service
	reviewService review.ReviewService
	tracker       progress.Tracker
	gateResolver  progress.GateResolver
	aggregator    progress.Aggregator
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established beforehand.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Stores
	app.wordProgressStore = postgres.NewPostgresWordProgressStore(db, logger)
	app.activityProgressStore = postgres.NewPostgresActivityProgressStore(db, logger)
	catalogStore := postgres.NewPostgresCatalogStore(db, logger)
	app.vocabularyCatalog = catalogStore
	app.contentUnitCatalog = catalogStore

	// Scheduling algorithm, tunable through configuration.
	app.srsService = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinimumIntervalDays:  cfg.SRS.MinimumIntervalDays,
		FirstReviewEasyDays:  cfg.SRS.FirstReviewEasyDays,
		HardGrowthFactor:     cfg.SRS.HardGrowthFactor,
		EasyGrowthFactor:     cfg.SRS.EasyGrowthFactor,
		LearningCeilingDays:  cfg.SRS.LearningCeilingDays,
		MasteryThresholdDays: cfg.SRS.MasteryThresholdDays,
		MasteryStreak:        cfg.SRS.MasteryStreak,
	}))

	// Services
	app.reviewService = review.NewReviewService(
		app.wordProgressStore,
		app.vocabularyCatalog,
		app.srsService,
		logger,
	)

	app.tracker = progress.NewTracker(
		app.activityProgressStore,
		app.wordProgressStore,
		logger,
	)

	oracle := progress.NewActivityCompletionOracle(app.contentUnitCatalog, app.tracker)
	app.gateResolver = progress.NewGateResolver(
		app.contentUnitCatalog,
		oracle,
		app.tracker,
		logger,
	)

	app.aggregator = progress.NewAggregator(
		app.wordProgressStore,
		app.activityProgressStore,
		app.vocabularyCatalog,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
