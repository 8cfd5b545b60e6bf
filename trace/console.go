// Package trace provides Observer implementations for the operation
// trace side channel: a console observer reproducing the classic
// bounded-buffer trace format and a structured slog observer.
//
// Tracing is observability only. Nothing in the synchronization protocol
// depends on it, and the console format is considered stable output for
// humans, not a machine interface.
package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/c360/prodcon/worker"
)

// ConsoleObserver writes one trace line per operation followed by a full
// dump of the buffer, with unoccupied slots rendered as the sentinel
// value:
//
//	P1: buffer[3] = 42
//	0 0 0 42 0 0 0 0 0 0
//
// A mutex serializes writes so concurrent workers never interleave a
// trace line with another worker's dump.
type ConsoleObserver[T any] struct {
	mu       sync.Mutex
	w        io.Writer
	sentinel T
}

// NewConsoleObserver creates a console observer writing to w. Unoccupied
// slots are rendered as sentinel in buffer dumps.
func NewConsoleObserver[T any](w io.Writer, sentinel T) *ConsoleObserver[T] {
	return &ConsoleObserver[T]{w: w, sentinel: sentinel}
}

// Observe implements worker.Observer.
func (o *ConsoleObserver[T]) Observe(e worker.Event[T]) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: buffer[%d] = %v\n", e.Worker.Name(), e.Op.Slot, e.Op.Value)
	for i, slot := range e.Op.Snapshot {
		if i > 0 {
			b.WriteByte(' ')
		}
		if slot.Occupied {
			fmt.Fprintf(&b, "%v", slot.Value)
		} else {
			fmt.Fprintf(&b, "%v", o.sentinel)
		}
	}
	b.WriteString("\n\n")

	o.mu.Lock()
	_, _ = io.WriteString(o.w, b.String())
	o.mu.Unlock()
}
