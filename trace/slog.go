package trace

import (
	"log/slog"

	"github.com/c360/prodcon/worker"
)

// SlogObserver emits one structured log record per operation. It is the
// machine-readable alternative to ConsoleObserver for deployments that
// ship logs instead of reading a console.
type SlogObserver[T any] struct {
	logger *slog.Logger
}

// NewSlogObserver creates an observer logging at Info level on logger.
func NewSlogObserver[T any](logger *slog.Logger) *SlogObserver[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver[T]{logger: logger}
}

// Observe implements worker.Observer.
func (o *SlogObserver[T]) Observe(e worker.Event[T]) {
	o.logger.Info("buffer operation",
		"worker", e.Worker.Name(),
		"role", e.Worker.Role.String(),
		"slot", e.Op.Slot,
		"value", e.Op.Value,
		"occupied", e.Op.Occupied,
		"produced", e.Op.Produced,
		"consumed", e.Op.Consumed)
}
