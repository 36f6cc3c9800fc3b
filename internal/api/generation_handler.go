package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cadenza-audio/cadenza-api/internal/api/shared"
	"github.com/cadenza-audio/cadenza-api/internal/domain"
	"github.com/cadenza-audio/cadenza-api/internal/platform/logger"
)

// GenerationService is the core boundary the HTTP layer calls into.
type GenerationService interface {
	// Submit accepts a generation request and returns the queued task.
	Submit(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationTask, error)

	// GetStatus returns a snapshot of the task with the given ID.
	GetStatus(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error)

	// IsReady reports whether the model has finished loading.
	IsReady() bool
}

// GenerationHandler handles music generation HTTP requests
type GenerationHandler struct {
	service GenerationService
	logger  *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(service GenerationService, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerationHandler")
	}

	return &GenerationHandler{
		service: service,
		logger:  logger.With(slog.String("component", "generation_handler")),
	}
}

// GenerateMusic handles POST /api/v1/generate requests.
// It queues a generation task and responds 202 Accepted with the task ID;
// the caller polls GetGenerationStatus for the outcome.
func (h *GenerationHandler) GenerateMusic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateMusicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode generation request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DurationSeconds == 0 {
		req.DurationSeconds = DefaultDurationSeconds
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("generation request failed validation", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.service.Submit(r.Context(), domain.GenerationRequest{
		Prompt:          req.Prompt,
		DurationSeconds: req.DurationSeconds,
		Genre:           req.Genre,
		Tempo:           req.Tempo,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("generation task accepted",
		slog.String("task_id", task.ID.String()),
		slog.Int("duration_seconds", task.DurationSeconds))

	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerateMusicResponse{
		TaskID:  task.ID,
		Status:  task.Status,
		Message: "Music generation task initiated successfully. Check status using GET /api/v1/status/{task_id}",
	})
}

// GetGenerationStatus handles GET /api/v1/status/{task_id} requests.
func (h *GenerationHandler) GetGenerationStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, err := uuid.Parse(chi.URLParam(r, "task_id"))
	if err != nil {
		log.Debug("malformed task ID", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.service.GetStatus(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GetMusicStatusResponse{
		TaskID:                   task.ID,
		Status:                   task.Status,
		PromptUsed:               task.Prompt,
		AudioURL:                 task.AudioURL,
		GeneratedDurationSeconds: task.GeneratedDurationSeconds,
		ErrorMessage:             task.ErrorMessage,
	})
}

// HealthCheck handles GET /health requests. It reports 503 until the model
// has loaded so load balancers hold traffic during warmup.
func (h *GenerationHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if !h.service.IsReady() {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status:     "Model not loaded",
			ModelReady: false,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:     "OK",
		ModelReady: true,
	})
}
