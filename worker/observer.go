package worker

import (
	"github.com/c360/prodcon/monitor"
)

// Event describes one successful buffer operation attributed to the
// worker that performed it. The embedded Op snapshot was captured under
// the monitor lock, so Event carries a consistent view of the buffer at
// the moment of the operation.
type Event[T any] struct {
	Worker Worker
	Op     monitor.Op[T]
}

// Observer receives an Event after every successful operation. It is an
// observability side channel, not part of the synchronization contract:
// implementations must not call back into the monitor and should return
// quickly, since events are delivered from the worker goroutines.
type Observer[T any] interface {
	Observe(Event[T])
}

// NopObserver discards all events. It is the default when no observer is
// configured.
type NopObserver[T any] struct{}

// Observe implements Observer.
func (NopObserver[T]) Observe(Event[T]) {}
