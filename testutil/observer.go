package testutil

import (
	"sync"

	"github.com/c360/prodcon/worker"
)

// RecordingObserver collects every worker event for later assertions.
// Safe for concurrent use.
type RecordingObserver[T any] struct {
	mu     sync.Mutex
	events []worker.Event[T]
}

// Observe implements worker.Observer.
func (o *RecordingObserver[T]) Observe(e worker.Event[T]) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

// Events returns a copy of all recorded events in arrival order.
func (o *RecordingObserver[T]) Events() []worker.Event[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]worker.Event[T], len(o.events))
	copy(out, o.events)
	return out
}

// ProducedValues returns the values written by producers, in arrival
// order.
func (o *RecordingObserver[T]) ProducedValues() []T {
	return o.values(worker.RoleProducer)
}

// ConsumedValues returns the values read by consumers, in arrival order.
func (o *RecordingObserver[T]) ConsumedValues() []T {
	return o.values(worker.RoleConsumer)
}

func (o *RecordingObserver[T]) values(role worker.Role) []T {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []T
	for _, e := range o.events {
		if e.Worker.Role == role {
			out = append(out, e.Op.Value)
		}
	}
	return out
}
