package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTransition is returned when a status change would violate
	// the generation task state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTerminalState is returned when attempting to mutate a task that
	// has already reached a terminal status.
	ErrTerminalState = errors.New("task is in a terminal state")
)
