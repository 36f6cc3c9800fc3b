package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cadenza-audio/cadenza-api/internal/domain"
)

// speedFactor models synthesis running faster than real time: producing one
// second of audio takes 1/speedFactor seconds of wall clock.
const speedFactor = 5

// failureTrigger forces a simulated failure when it appears anywhere in the
// prompt, so failure paths can be exercised end to end without a real model.
const failureTrigger = "fail"

// SynthesisResult holds the output of a successful synthesis run.
type SynthesisResult struct {
	// AudioURL is the locator under which the generated audio is retrievable.
	AudioURL string

	// DurationSeconds is the actual duration of the generated audio.
	DurationSeconds int
}

// Synthesizer produces audio for a generation task. Implementations must be
// safe for concurrent use; the service runs one synthesis per task, all
// against the same Synthesizer instance.
type Synthesizer interface {
	Synthesize(ctx context.Context, task domain.GenerationTask) (*SynthesisResult, error)
}

// SimulatedSynthesizer is a stand-in for a real model backend. It waits
// proportionally to the requested duration, fails on a trigger substring in
// the prompt, and otherwise reports an audio locator derived from the task ID
// with the generated duration equal to the requested one. Everything here
// except the Synthesizer contract itself is placeholder behavior.
type SimulatedSynthesizer struct {
	// baseURL is prepended to generated audio paths, e.g. "http://localhost:8080".
	baseURL string

	// timeScale is the wall-clock cost of one second of requested audio
	// before the speed factor is applied. Production uses time.Second; tests
	// shrink it to keep simulated waits bounded.
	timeScale time.Duration
}

// Statically verify interface compliance.
var _ Synthesizer = (*SimulatedSynthesizer)(nil)

// NewSimulatedSynthesizer creates a SimulatedSynthesizer serving locators
// under baseURL. A non-positive timeScale defaults to time.Second.
func NewSimulatedSynthesizer(baseURL string, timeScale time.Duration) *SimulatedSynthesizer {
	if timeScale <= 0 {
		timeScale = time.Second
	}

	return &SimulatedSynthesizer{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeScale: timeScale,
	}
}

// Synthesize runs the simulated generation workload for one task. The wait is
// a timer-based suspension, not a busy sleep of the process, so concurrent
// syntheses do not serialize. Returns early with the context's error if ctx
// is cancelled mid-synthesis.
func (s *SimulatedSynthesizer) Synthesize(
	ctx context.Context,
	task domain.GenerationTask,
) (*SynthesisResult, error) {
	wait := time.Duration(task.DurationSeconds) * s.timeScale / speedFactor

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("synthesis interrupted: %w", ctx.Err())
	case <-timer.C:
	}

	if strings.Contains(strings.ToLower(task.Prompt), failureTrigger) {
		return nil, fmt.Errorf("simulated failure due to keyword %q in prompt", failureTrigger)
	}

	return &SynthesisResult{
		AudioURL:        fmt.Sprintf("%s/static/audio/%s.mp3", s.baseURL, task.ID),
		DurationSeconds: task.DurationSeconds,
	}, nil
}
