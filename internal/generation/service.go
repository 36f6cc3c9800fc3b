package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cadenza-audio/cadenza-api/internal/domain"
	"github.com/cadenza-audio/cadenza-api/internal/store"
)

// ServiceConfig holds configuration for the generation service
type ServiceConfig struct {
	// ModelWarmup is how long the simulated model load takes before the
	// service starts accepting submissions. If zero, defaults to 2 seconds.
	ModelWarmup time.Duration
}

// DefaultServiceConfig returns a ServiceConfig with reasonable defaults
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ModelWarmup: 2 * time.Second,
	}
}

// Service orchestrates the music generation task lifecycle. It is constructed
// once at process start and shared by reference with all request handlers.
// Submit accepts work and returns immediately; a detached goroutine per task
// drives the status state machine through the store, which is the only
// channel between the submitting path and the execution path.
type Service struct {
	taskStore store.TaskStore
	synth     Synthesizer
	config    ServiceConfig
	logger    *slog.Logger

	ready      atomic.Bool
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates a new generation Service. The readiness gate starts
// closed; call LoadModel (or MarkReady directly in tests) before submitting.
func NewService(
	taskStore store.TaskStore,
	synth Synthesizer,
	config ServiceConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for generation Service")
	}

	if config.ModelWarmup == 0 {
		config.ModelWarmup = DefaultServiceConfig().ModelWarmup
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		taskStore:  taskStore,
		synth:      synth,
		config:     config,
		logger:     logger.With(slog.String("component", "generation_service")),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// IsReady reports whether the model has finished loading and submissions are
// accepted.
func (s *Service) IsReady() bool {
	return s.ready.Load()
}

// MarkReady opens the readiness gate. It is called exactly once by the
// startup sequence, before the service accepts traffic.
func (s *Service) MarkReady() {
	s.ready.Store(true)
}

// LoadModel simulates loading the model and opens the readiness gate when
// done. It blocks for the configured warmup duration and returns early with
// the context's error if ctx is cancelled first, leaving the gate closed.
func (s *Service) LoadModel(ctx context.Context) error {
	s.logger.Info("loading model", "warmup", s.config.ModelWarmup)

	timer := time.NewTimer(s.config.ModelWarmup)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("model load interrupted: %w", ctx.Err())
	case <-timer.C:
	}

	s.MarkReady()
	s.logger.Info("model loaded, accepting submissions")
	return nil
}

// Submit accepts a generation request and queues it for background
// execution. It returns a snapshot of the freshly queued task without waiting
// for generation work: the task is inserted into the store before the ID is
// handed back and before the executor goroutine may start, so a GetStatus
// call for a returned ID always resolves.
// Returns ErrModelNotReady, with no task created, while the gate is closed.
func (s *Service) Submit(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.GenerationTask, error) {
	if !s.IsReady() {
		return nil, ErrModelNotReady
	}

	task, err := domain.NewGenerationTask(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.taskStore.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logger.Info("task queued",
		"task_id", task.ID,
		"requested_duration_seconds", task.DurationSeconds)

	s.wg.Add(1)
	go s.runTask(task.ID)

	return task, nil
}

// GetStatus returns a read-only snapshot of the task with the given ID.
// Returns store.ErrTaskNotFound if the ID was never issued by this process.
func (s *Service) GetStatus(
	ctx context.Context,
	id uuid.UUID,
) (*domain.GenerationTask, error) {
	return s.taskStore.Get(ctx, id)
}

// Stop shuts the service down: in-flight simulated waits are cancelled and
// their tasks marked failed, then Stop blocks until every executor goroutine
// has reached a terminal state. Accepted tasks are never left mid-flight.
func (s *Service) Stop() {
	s.cancelFunc()
	s.wg.Wait()
}

// runTask drives one task through processing to a terminal state. It runs
// detached from the submitting request: errors, including panics from the
// synthesizer, are contained in the task's failed state and never reach the
// submitter or any other in-flight task.
func (s *Service) runTask(id uuid.UUID) {
	defer s.wg.Done()

	logger := s.logger.With("task_id", id)

	defer func() {
		if p := recover(); p != nil {
			logger.Error("synthesis panicked", "panic", p)
			s.failTask(id, fmt.Sprintf("generation failed: internal error: %v", p), logger)
		}
	}()

	task, err := s.taskStore.Update(s.ctx, id, func(t *domain.GenerationTask) error {
		return t.MarkProcessing()
	})
	if err != nil {
		logger.Error("failed to update task status to processing", "error", err)
		return
	}

	logger.Info("processing task")

	result, err := s.synth.Synthesize(s.ctx, *task)
	if err != nil {
		logger.Error("synthesis failed", "error", err)
		s.failTask(id, fmt.Sprintf("generation failed: %v", err), logger)
		return
	}

	_, err = s.taskStore.Update(s.ctx, id, func(t *domain.GenerationTask) error {
		return t.Complete(result.AudioURL, result.DurationSeconds)
	})
	if err != nil {
		logger.Error("failed to update task status to completed", "error", err)
		return
	}

	logger.Info("task completed", "audio_url", result.AudioURL)
}

// failTask records a terminal failure on the task.
func (s *Service) failTask(id uuid.UUID, message string, logger *slog.Logger) {
	_, err := s.taskStore.Update(s.ctx, id, func(t *domain.GenerationTask) error {
		return t.Fail(message)
	})
	if err != nil {
		logger.Error("failed to update task status to failed", "error", err)
	}
}
