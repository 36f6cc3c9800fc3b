package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewGenerationTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	req := GenerationRequest{
		Prompt:          "A calm piano piece",
		DurationSeconds: 30,
	}

	task, err := NewGenerationTask(req)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Status != GenerationStatusQueued {
		t.Errorf("Expected status %s, got %s", GenerationStatusQueued, task.Status)
	}

	if task.Prompt != req.Prompt {
		t.Errorf("Expected prompt %s, got %s", req.Prompt, task.Prompt)
	}

	if task.DurationSeconds != req.DurationSeconds {
		t.Errorf("Expected duration %d, got %d", req.DurationSeconds, task.DurationSeconds)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test empty prompt
	_, err = NewGenerationTask(GenerationRequest{DurationSeconds: 30})
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPrompt, err)
	}

	// Test non-positive duration
	_, err = NewGenerationTask(GenerationRequest{Prompt: "A calm piano piece"})
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("Expected error %v, got %v", ErrInvalidDuration, err)
	}
}

func TestGenerationTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := GenerationTask{
		ID:              uuid.New(),
		Status:          GenerationStatusQueued,
		Prompt:          "Test prompt",
		DurationSeconds: 30,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidTask := validTask
	invalidTask.ID = uuid.Nil
	if err := invalidTask.Validate(); !errors.Is(err, ErrEmptyTaskID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskID, err)
	}

	invalidTask = validTask
	invalidTask.Status = "exploded"
	if err := invalidTask.Validate(); !errors.Is(err, ErrInvalidGenerationStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidGenerationStatus, err)
	}

	// A non-terminal task must not carry result fields
	invalidTask = validTask
	invalidTask.AudioURL = "http://localhost:8080/static/audio/x.mp3"
	if err := invalidTask.Validate(); !errors.Is(err, ErrInconsistentResultFields) {
		t.Errorf("Expected error %v, got %v", ErrInconsistentResultFields, err)
	}

	// A completed task must carry both success fields and no error message
	invalidTask = validTask
	invalidTask.Status = GenerationStatusCompleted
	if err := invalidTask.Validate(); !errors.Is(err, ErrInconsistentResultFields) {
		t.Errorf("Expected error %v, got %v", ErrInconsistentResultFields, err)
	}

	completedTask := validTask
	completedTask.Status = GenerationStatusCompleted
	completedTask.AudioURL = "http://localhost:8080/static/audio/x.mp3"
	completedTask.GeneratedDurationSeconds = 30
	if err := completedTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// A failed task must carry an error message and no success fields
	failedTask := validTask
	failedTask.Status = GenerationStatusFailed
	if err := failedTask.Validate(); !errors.Is(err, ErrInconsistentResultFields) {
		t.Errorf("Expected error %v, got %v", ErrInconsistentResultFields, err)
	}

	failedTask.ErrorMessage = "generation failed: out of notes"
	if err := failedTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestGenerationTaskTransitions(t *testing.T) {
	t.Parallel() // Enable parallel execution

	task, err := NewGenerationTask(GenerationRequest{
		Prompt:          "Test prompt",
		DurationSeconds: 10,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// queued -> completed is not a valid edge
	if err := task.TransitionTo(GenerationStatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected error %v, got %v", ErrInvalidTransition, err)
	}

	if err := task.MarkProcessing(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != GenerationStatusProcessing {
		t.Errorf("Expected status %s, got %s", GenerationStatusProcessing, task.Status)
	}

	if err := task.Complete("http://localhost:8080/static/audio/x.mp3", 10); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != GenerationStatusCompleted {
		t.Errorf("Expected status %s, got %s", GenerationStatusCompleted, task.Status)
	}
	if task.GeneratedDurationSeconds != 10 {
		t.Errorf("Expected generated duration 10, got %d", task.GeneratedDurationSeconds)
	}

	// Terminal states are final
	if err := task.MarkProcessing(); !errors.Is(err, ErrTerminalState) {
		t.Errorf("Expected error %v, got %v", ErrTerminalState, err)
	}
	if err := task.Fail("late failure"); !errors.Is(err, ErrTerminalState) {
		t.Errorf("Expected error %v, got %v", ErrTerminalState, err)
	}
}

func TestGenerationTaskFail(t *testing.T) {
	t.Parallel() // Enable parallel execution

	task, err := NewGenerationTask(GenerationRequest{
		Prompt:          "Test prompt",
		DurationSeconds: 10,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := task.Fail(""); !errors.Is(err, ErrInconsistentResultFields) {
		t.Errorf("Expected error %v, got %v", ErrInconsistentResultFields, err)
	}

	// Failure is allowed straight from queued
	if err := task.Fail("generation failed: model exploded"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != GenerationStatusFailed {
		t.Errorf("Expected status %s, got %s", GenerationStatusFailed, task.Status)
	}
	if task.AudioURL != "" || task.GeneratedDurationSeconds != 0 {
		t.Error("Expected no success fields on a failed task")
	}
	if err := task.Validate(); err != nil {
		t.Errorf("Expected valid failed task, got %v", err)
	}
}

func TestGenerationStatusIsTerminal(t *testing.T) {
	t.Parallel() // Enable parallel execution

	terminal := []GenerationStatus{GenerationStatusCompleted, GenerationStatusFailed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("Expected %s to be terminal", s)
		}
	}

	nonTerminal := []GenerationStatus{
		GenerationStatusPending,
		GenerationStatusQueued,
		GenerationStatusProcessing,
	}
	for _, s := range nonTerminal {
		if s.IsTerminal() {
			t.Errorf("Expected %s to be non-terminal", s)
		}
	}
}
