package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cadenza-audio/cadenza-api/internal/domain"
)

// MemoryTaskStore is an in-memory TaskStore backed by a mutex-guarded map.
// It exclusively owns the stored records: values are copied on the way in and
// on the way out, so no caller can hold a reference that diverges from the
// store's state. Records are never evicted; with no TTL the map grows for the
// lifetime of the process, which is acceptable for this service's scope.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.GenerationTask
}

// Statically verify interface compliance.
var _ TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks: make(map[uuid.UUID]domain.GenerationTask),
	}
}

// Insert persists a new task. Returns ErrDuplicate if a task with the same ID
// already exists and ErrInvalidEntity if the task fails validation.
func (s *MemoryTaskStore) Insert(ctx context.Context, task *domain.GenerationTask) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidEntity)
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("%w: generation task %s", ErrDuplicate, task.ID)
	}

	s.tasks[task.ID] = *task
	return nil
}

// Get retrieves a snapshot of the task with the given ID.
func (s *MemoryTaskStore) Get(
	ctx context.Context,
	id uuid.UUID,
) (*domain.GenerationTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[id]
	if !exists {
		return nil, ErrTaskNotFound
	}

	return &task, nil
}

// Update applies fn to the stored task under the write lock. fn receives a
// working copy; the copy replaces the stored record only when fn succeeds and
// the result still passes entity validation, so readers never observe a
// partially-updated or invalid record.
func (s *MemoryTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(task *domain.GenerationTask) error,
) (*domain.GenerationTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return nil, ErrTaskNotFound
	}

	if err := fn(&task); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	s.tasks[id] = task
	return &task, nil
}

// Len reports the number of stored tasks.
func (s *MemoryTaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
