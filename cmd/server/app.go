package main

import (
	"log/slog"
	"time"

	"github.com/cadenza-audio/cadenza-api/internal/config"
	"github.com/cadenza-audio/cadenza-api/internal/generation"
	"github.com/cadenza-audio/cadenza-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown. It is constructed once at
// process start; handlers receive its services by reference.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// Service instances
	generationService *generation.Service
}

// newApplication wires the application dependency graph from configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	taskStore := store.NewMemoryTaskStore()

	synth := generation.NewSimulatedSynthesizer(cfg.Server.BaseURL, time.Second)

	generationService := generation.NewService(
		taskStore,
		synth,
		generation.ServiceConfig{
			ModelWarmup: time.Duration(cfg.Generation.ModelWarmupSeconds) * time.Second,
		},
		logger,
	)

	return &application{
		config:            cfg,
		logger:            logger,
		taskStore:         taskStore,
		generationService: generationService,
	}
}

// cleanup releases application resources on shutdown. In-flight generation
// tasks are driven to a terminal state before this returns.
func (app *application) cleanup() {
	app.generationService.Stop()
}
