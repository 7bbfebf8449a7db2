package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/config"
	"github.com/bhasha-shikkha/coach-api/internal/content"
	"github.com/bhasha-shikkha/coach-api/internal/domain/leitner"
	"github.com/bhasha-shikkha/coach-api/internal/platform/mymemory"
	"github.com/bhasha-shikkha/coach-api/internal/platform/postgres"
	"github.com/bhasha-shikkha/coach-api/internal/service/review"
	"github.com/bhasha-shikkha/coach-api/internal/service/session"
	"github.com/bhasha-shikkha/coach-api/internal/service/translator"
)

// application holds the assembled dependency graph of the server. It
// exists so the router and lifecycle code can share one wired set of
// services and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	contentService *content.Service
	translator     *translator.Service
	reviewService  review.Service
	sessionBuilder *session.Builder
}

// newApplication wires every service from configuration and the open
// database handle. Migrations are applied before any store is used.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	contentService := content.NewService(
		cfg.Content.VocabularyPath,
		cfg.Content.SentencesPath,
		logger,
	)

	resolver := translator.NewResolver(logger)

	policy := translator.ParsePolicy(cfg.Translate.Policy)
	var provider translator.Provider
	if policy != translator.PolicyLocal {
		opts := []mymemory.Option{
			mymemory.WithTimeout(time.Duration(cfg.Translate.TimeoutSeconds) * time.Second),
			mymemory.WithCacheSize(cfg.Translate.CacheSize),
		}
		if cfg.Translate.Endpoint != "" {
			opts = append(opts, mymemory.WithEndpoint(cfg.Translate.Endpoint))
		}
		provider = mymemory.NewClient(logger, opts...)
	}
	translatorService := translator.NewService(resolver, provider, policy, logger)

	progressStore := postgres.NewPostgresWordProgressStore(db, logger)
	activityStore := postgres.NewPostgresActivityStore(db, logger)

	reviewService := review.NewService(
		progressStore,
		activityStore,
		leitner.NewDefaultService(),
		contentService,
		logger,
	)
	sessionBuilder := session.NewBuilder(progressStore, contentService, logger)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		contentService: contentService,
		translator:     translatorService,
		reviewService:  reviewService,
		sessionBuilder: sessionBuilder,
	}, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
