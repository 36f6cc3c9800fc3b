package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/cadenza-audio/cadenza-api/internal/domain"
)

// TaskStore defines the interface for persisting generation tasks.
// Implementations must be safe for concurrent use from the submission path
// and the background execution path simultaneously.
type TaskStore interface {
	// Insert persists a new task. Returns ErrDuplicate if a task with the
	// same ID already exists and ErrInvalidEntity if the task fails
	// validation.
	Insert(ctx context.Context, task *domain.GenerationTask) error

	// Get retrieves a snapshot of the task with the given ID.
	// The returned value is a copy; mutating it does not affect the store.
	// Returns ErrTaskNotFound if no task with the ID exists.
	Get(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error)

	// Update applies fn to the stored task atomically with respect to
	// concurrent reads: a reader observes either the state before fn or the
	// state after it, never a partial update. The mutation is discarded if
	// fn returns an error or leaves the task invalid. Returns a snapshot of
	// the updated task, or ErrTaskNotFound if no task with the ID exists.
	Update(
		ctx context.Context,
		id uuid.UUID,
		fn func(task *domain.GenerationTask) error,
	) (*domain.GenerationTask, error)
}
