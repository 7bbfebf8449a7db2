package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bhasha-shikkha/coach-api/internal/api"
	apiMiddleware "github.com/bhasha-shikkha/coach-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	translateHandler := api.NewTranslateHandler(app.translator, app.contentService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionBuilder, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Translation endpoint
		r.Post("/translate", translateHandler.Translate)

		// Spaced repetition endpoints
		r.Post("/progress", reviewHandler.SubmitProgress)
		r.Get("/review/{language}", reviewHandler.GetReviewWords)
		r.Get("/activity", reviewHandler.GetActivity)

		// Practice session endpoint
		r.Get("/practice/{language}", sessionHandler.GetPractice)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
