package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/cadenza-audio/cadenza-api/internal/domain"
	"github.com/cadenza-audio/cadenza-api/internal/generation"
	"github.com/cadenza-audio/cadenza-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"model not ready", generation.ErrModelNotReady, http.StatusServiceUnavailable},
		{"wrapped model not ready", fmt.Errorf("submit: %w", generation.ErrModelNotReady), http.StatusServiceUnavailable},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"empty prompt", domain.ErrEmptyPrompt, http.StatusBadRequest},
		{"invalid duration", domain.ErrInvalidDuration, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	msg := GetSafeErrorMessage(fmt.Errorf("lookup: %w", store.ErrTaskNotFound))
	assert.Equal(t, "Generation task not found", msg)

	// Internal details must never surface
	leaky := errors.New("dial tcp 10.0.0.8:5432: connection refused")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	validate := validator.New()
	err := validate.Struct(GenerateMusicRequest{DurationSeconds: 30})
	assert.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Prompt")
	assert.NotContains(t, msg, "GenerateMusicRequest", "struct internals should not leak")
}
