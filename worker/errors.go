package worker

import "errors"

// Sentinel errors for pool construction and lifecycle
var (
	// ErrNilMonitor indicates no monitor was provided
	ErrNilMonitor = errors.New("monitor cannot be nil")

	// ErrNilGenerator indicates a nil value generator was provided
	ErrNilGenerator = errors.New("generator function cannot be nil")
)
