// Package main implements the entry point for the Cadenza API server, which
// accepts text-to-music generation requests, executes them asynchronously,
// and serves status polling plus the generated audio files.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/cadenza-audio/cadenza-api/internal/config"
	"github.com/cadenza-audio/cadenza-api/internal/platform/logger"
)

// main is the entry point for the cadenza-api server.
// It initializes configuration, sets up logging, wires dependencies, loads
// the (simulated) model, and starts the HTTP server. Submissions are only
// accepted once the model has finished loading.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	// Load the model before accepting traffic; submissions fail with a
	// retryable unavailability error until this completes.
	if err := app.generationService.LoadModel(ctx); err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the wired application and any initialization error.
func initializeApp() (*application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Log configuration details using structured logging
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"base_url", cfg.Server.BaseURL)

	// The audio directory backs the /static/audio file server
	if err := os.MkdirAll(cfg.Server.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	return newApplication(cfg, appLogger), nil
}
