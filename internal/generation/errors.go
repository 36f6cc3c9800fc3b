package generation

import "errors"

// Common errors returned by the generation service.
var (
	// ErrModelNotReady is returned by Submit while the model is still
	// loading. The caller should retry after the readiness gate opens; no
	// task is created.
	ErrModelNotReady = errors.New("model is not loaded or ready")
)
