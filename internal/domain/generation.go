package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerationStatus represents the processing state of a generation task
type GenerationStatus string

// Possible generation task status values
const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusQueued     GenerationStatus = "queued"
	GenerationStatusProcessing GenerationStatus = "processing"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// IsTerminal reports whether the status permits no further transitions.
func (s GenerationStatus) IsTerminal() bool {
	return s == GenerationStatusCompleted || s == GenerationStatusFailed
}

// validTransitions defines the allowed edges of the task state machine.
// Statuses only move forward; completed and failed are terminal.
var validTransitions = map[GenerationStatus][]GenerationStatus{
	GenerationStatusPending:    {GenerationStatusQueued},
	GenerationStatusQueued:     {GenerationStatusProcessing, GenerationStatusFailed},
	GenerationStatusProcessing: {GenerationStatusCompleted, GenerationStatusFailed},
}

// Common validation errors for GenerationTask
var (
	ErrEmptyTaskID              = errors.New("generation task ID cannot be empty")
	ErrEmptyPrompt              = errors.New("prompt cannot be empty")
	ErrInvalidDuration          = errors.New("requested duration must be positive")
	ErrInvalidGenerationStatus  = errors.New("invalid generation status")
	ErrInconsistentResultFields = errors.New("result fields do not match task status")
)

// GenerationRequest represents the core request for generating a piece of
// music from a text prompt. Genre and Tempo are optional hints and are not
// interpreted by the simulated backend.
type GenerationRequest struct {
	Prompt          string `json:"prompt"`
	DurationSeconds int    `json:"duration_seconds"`
	Genre           string `json:"genre,omitempty"`
	Tempo           int    `json:"tempo,omitempty"`
}

// Validate checks if the GenerationRequest has valid data.
func (r GenerationRequest) Validate() error {
	if r.Prompt == "" {
		return ErrEmptyPrompt
	}
	if r.DurationSeconds <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// GenerationTask represents one unit of requested generation work. It tracks
// the original request alongside the task's position in the status state
// machine and, once terminal, exactly one of the success or failure results.
type GenerationTask struct {
	ID                       uuid.UUID        `json:"id"`
	Status                   GenerationStatus `json:"status"`
	Prompt                   string           `json:"prompt"`
	DurationSeconds          int              `json:"duration_seconds"`
	AudioURL                 string           `json:"audio_url,omitempty"`
	GeneratedDurationSeconds int              `json:"generated_duration_seconds,omitempty"`
	ErrorMessage             string           `json:"error_message,omitempty"`
	CreatedAt                time.Time        `json:"created_at"`
	UpdatedAt                time.Time        `json:"updated_at"`
}

// NewGenerationTask creates a new GenerationTask from the given request.
// It generates a new UUID for the task ID, sets the status to queued,
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewGenerationTask(req GenerationRequest) (*GenerationTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &GenerationTask{
		ID:              uuid.New(),
		Status:          GenerationStatusQueued,
		Prompt:          req.Prompt,
		DurationSeconds: req.DurationSeconds,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the GenerationTask has valid data, including the
// invariant that result fields are populated only in the matching terminal
// status: audio URL and generated duration iff completed, error message iff
// failed, neither otherwise.
func (t *GenerationTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Prompt == "" {
		return ErrEmptyPrompt
	}

	if t.DurationSeconds <= 0 {
		return ErrInvalidDuration
	}

	if !isValidGenerationStatus(t.Status) {
		return ErrInvalidGenerationStatus
	}

	hasResult := t.AudioURL != "" || t.GeneratedDurationSeconds != 0
	hasError := t.ErrorMessage != ""

	switch t.Status {
	case GenerationStatusCompleted:
		if t.AudioURL == "" || t.GeneratedDurationSeconds <= 0 || hasError {
			return ErrInconsistentResultFields
		}
	case GenerationStatusFailed:
		if !hasError || hasResult {
			return ErrInconsistentResultFields
		}
	default:
		if hasResult || hasError {
			return ErrInconsistentResultFields
		}
	}

	return nil
}

// TransitionTo moves the task to the next status if the state machine allows
// it. Returns ErrTerminalState when the task is already terminal and
// ErrInvalidTransition for any other disallowed edge.
func (t *GenerationTask) TransitionTo(next GenerationStatus) error {
	if !isValidGenerationStatus(next) {
		return ErrInvalidGenerationStatus
	}

	if t.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot leave %s", ErrTerminalState, t.Status)
	}

	for _, allowed := range validTransitions[t.Status] {
		if next == allowed {
			t.Status = next
			t.UpdatedAt = time.Now().UTC()
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, next)
}

// MarkProcessing transitions the task from queued to processing.
func (t *GenerationTask) MarkProcessing() error {
	return t.TransitionTo(GenerationStatusProcessing)
}

// Complete transitions the task to completed and records the generated
// audio location and duration.
func (t *GenerationTask) Complete(audioURL string, durationSeconds int) error {
	if audioURL == "" || durationSeconds <= 0 {
		return ErrInconsistentResultFields
	}

	if err := t.TransitionTo(GenerationStatusCompleted); err != nil {
		return err
	}

	t.AudioURL = audioURL
	t.GeneratedDurationSeconds = durationSeconds
	t.ErrorMessage = ""
	return nil
}

// Fail transitions the task to failed and records a human-readable cause.
func (t *GenerationTask) Fail(message string) error {
	if message == "" {
		return ErrInconsistentResultFields
	}

	if err := t.TransitionTo(GenerationStatusFailed); err != nil {
		return err
	}

	t.ErrorMessage = message
	t.AudioURL = ""
	t.GeneratedDurationSeconds = 0
	return nil
}

// isValidGenerationStatus checks if the status is one of the defined values
func isValidGenerationStatus(status GenerationStatus) bool {
	switch status {
	case GenerationStatusPending,
		GenerationStatusQueued,
		GenerationStatusProcessing,
		GenerationStatusCompleted,
		GenerationStatusFailed:
		return true
	default:
		return false
	}
}
