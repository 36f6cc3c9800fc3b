package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cadenza-audio/cadenza-api/internal/api"
	apiMiddleware "github.com/cadenza-audio/cadenza-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	generationHandler := api.NewGenerationHandler(app.generationService, app.logger)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", generationHandler.GenerateMusic)
		r.Get("/status/{task_id}", generationHandler.GetGenerationStatus)
	})

	// Health check endpoint
	r.Get("/health", generationHandler.HealthCheck)

	// Generated audio is served from a local directory. A production
	// deployment would serve from object storage instead.
	audioServer := http.StripPrefix("/static/audio/", http.FileServer(http.Dir(app.config.Server.AudioDir)))
	r.Get("/static/audio/*", audioServer.ServeHTTP)

	return r
}
