package api

import (
	"github.com/google/uuid"

	"github.com/cadenza-audio/cadenza-api/internal/domain"
)

// Common request/response structures

// DefaultDurationSeconds is applied when a generation request omits the
// duration field.
const DefaultDurationSeconds = 30

// GenerateMusicRequest defines the payload for the music generation endpoint.
type GenerateMusicRequest struct {
	// Prompt is the text description of the desired music.
	Prompt string `json:"prompt" validate:"required,min=1,max=500"`

	// DurationSeconds is the desired duration of the music. Zero means
	// "use the default"; anything else must fall in the accepted range.
	DurationSeconds int `json:"duration_seconds" validate:"omitempty,gte=10,lte=180"`

	// Genre is an optional genre hint (e.g., "orchestral", "electronic").
	Genre string `json:"genre,omitempty" validate:"omitempty,max=100"`

	// Tempo is an optional tempo hint in BPM.
	Tempo int `json:"tempo,omitempty" validate:"omitempty,gte=40,lte=200"`
}

// GenerateMusicResponse defines the successful response for the generation
// endpoint. It indicates the task has been accepted, not completed.
type GenerateMusicResponse struct {
	TaskID  uuid.UUID               `json:"task_id"`
	Status  domain.GenerationStatus `json:"status"`
	Message string                  `json:"message"`
}

// GetMusicStatusResponse defines the response for the status polling
// endpoint. AudioURL and GeneratedDurationSeconds are present only for
// completed tasks; ErrorMessage only for failed ones.
type GetMusicStatusResponse struct {
	TaskID                   uuid.UUID               `json:"task_id"`
	Status                   domain.GenerationStatus `json:"status"`
	PromptUsed               string                  `json:"prompt_used"`
	AudioURL                 string                  `json:"audio_url,omitempty"`
	GeneratedDurationSeconds int                     `json:"generated_duration_seconds,omitempty"`
	ErrorMessage             string                  `json:"error_message,omitempty"`
}

// HealthResponse defines the response for the health check endpoint.
type HealthResponse struct {
	Status     string `json:"status"`
	ModelReady bool   `json:"model_ready"`
}
