package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenza-audio/cadenza-api/internal/api"
	"github.com/cadenza-audio/cadenza-api/internal/config"
	"github.com/cadenza-audio/cadenza-api/internal/domain"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "debug",
			BaseURL:  "http://localhost:8080",
			AudioDir: t.TempDir(),
		},
		Generation: config.GenerationConfig{
			ModelWarmupSeconds: 1,
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := newApplication(cfg, logger)
	t.Cleanup(app.cleanup)
	return app
}

func TestGenerateAndPollLifecycle(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	app.generationService.MarkReady()
	router := app.setupRouter()

	// Submit a generation request
	body := `{"prompt": "A calm piano piece", "duration_seconds": 10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var accepted api.GenerateMusicResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEqual(t, uuid.Nil, accepted.TaskID)
	assert.Equal(t, domain.GenerationStatusQueued, accepted.Status)

	// Poll until the task completes; a 10 second request simulates in ~2s
	statusURL := "/api/v1/status/" + accepted.TaskID.String()
	var status api.GetMusicStatusResponse
	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, statusURL, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
			return false
		}
		return status.Status == domain.GenerationStatusCompleted
	}, 10*time.Second, 50*time.Millisecond)

	assert.Equal(t, accepted.TaskID, status.TaskID)
	assert.Equal(t, "A calm piano piece", status.PromptUsed)
	assert.Contains(t, status.AudioURL, accepted.TaskID.String())
	assert.Contains(t, status.AudioURL, "http://localhost:8080/static/audio/")
	assert.Equal(t, 10, status.GeneratedDurationSeconds)
	assert.Empty(t, status.ErrorMessage)
}

func TestGenerateBeforeModelReady(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	body := `{"prompt": "A calm piano piece"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Health mirrors the readiness gate
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusUnknownTask(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	app.generationService.MarkReady()
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAfterModelLoad(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	app.generationService.MarkReady()
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ModelReady)
}
