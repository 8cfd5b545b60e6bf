package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/ring"
)

// Role labels used for statistics and metrics. The worker package owns
// the worker-facing Role type; these strings are the label values shared
// across packages.
const (
	RoleProducer = "producer"
	RoleConsumer = "consumer"
)

// Op describes one successful buffer operation, captured atomically under
// the monitor lock. Snapshot is a copy and safe to retain.
type Op[T any] struct {
	Slot     int
	Value    T
	Produced int
	Consumed int
	Occupied int
	Snapshot []ring.Slot[T]
}

// Monitor serializes all access to the shared ring and implements the
// full/empty blocking protocol: producers block while the ring is full,
// consumers block while it is empty, and both sides stop once their
// global target is reached.
//
// The mutex guards every field below it. Waiting releases the mutex and
// reacquires it atomically on wake (sync.Cond semantics); the condition
// is always re-checked in a loop, so spurious wakeups are harmless.
type Monitor[T any] struct {
	mu         sync.Mutex
	spaceAvail *sync.Cond
	itemAvail  *sync.Cond

	buf           *ring.Ring[T]
	produced      int
	consumed      int
	produceTarget int
	consumeTarget int

	stats   *Statistics
	metrics *monitorMetrics
}

// New creates a monitor over an empty ring of the given capacity with
// fixed production and consumption targets.
func New[T any](capacity, produceTarget, consumeTarget int, options ...Option) (*Monitor[T], error) {
	if produceTarget < 0 || consumeTarget < 0 {
		return nil, errors.WrapInit(
			fmt.Errorf("targets must be non-negative, got produce=%d consume=%d",
				produceTarget, consumeTarget),
			"Monitor", "New", "validate targets")
	}
	if produceTarget != consumeTarget {
		// Unequal targets either strand items in the buffer or park
		// consumers forever; the protocol is defined for matched work.
		return nil, errors.WrapInit(
			fmt.Errorf("targets must match, got produce=%d consume=%d",
				produceTarget, consumeTarget),
			"Monitor", "New", "validate targets")
	}

	buf, err := ring.New[T](capacity)
	if err != nil {
		return nil, err
	}

	opts := applyOptions(options...)

	m := &Monitor[T]{
		buf:           buf,
		produceTarget: produceTarget,
		consumeTarget: consumeTarget,
		stats:         NewStatistics(),
		metrics:       newMonitorMetrics(opts.registry),
	}
	m.spaceAvail = sync.NewCond(&m.mu)
	m.itemAvail = sync.NewCond(&m.mu)
	return m, nil
}

// Produce stores v in the next free slot, blocking while the ring is
// full. It returns ok=false without touching the buffer when the global
// production target has already been reached; the caller's loop is over.
func (m *Monitor[T]) Produce(v T) (Op[T], bool) {
	m.mu.Lock()

	m.waitFor(m.spaceAvail, RoleProducer, func() bool {
		return m.buf.IsFull() && m.produced < m.produceTarget
	})

	// Authoritative re-check after acquiring the lock (and after any
	// wait): late wakers pass through once other producers have met the
	// target, so every worker observes termination.
	if m.produced >= m.produceTarget {
		m.spaceAvail.Broadcast()
		m.mu.Unlock()
		return Op[T]{}, false
	}

	slot := m.buf.Write(v)
	m.produced++
	m.stats.RecordWrite(m.buf.Len())
	m.metrics.recordOp(RoleProducer, m.buf.Len(), m.buf.Capacity())

	op := Op[T]{
		Slot:     slot,
		Value:    v,
		Produced: m.produced,
		Consumed: m.consumed,
		Occupied: m.buf.Len(),
		Snapshot: m.buf.Snapshot(),
	}

	// One write fills exactly one slot: one waiter suffices.
	m.itemAvail.Signal()
	if m.produced == m.produceTarget {
		// Final completion: wake everything still parked so no worker
		// stays blocked after the target is reached.
		m.itemAvail.Broadcast()
		m.spaceAvail.Broadcast()
	}

	m.mu.Unlock()
	return op, true
}

// Consume removes the oldest item, blocking while the ring is empty. It
// returns ok=false without touching the buffer when the global
// consumption target has already been reached.
func (m *Monitor[T]) Consume() (Op[T], bool) {
	m.mu.Lock()

	m.waitFor(m.itemAvail, RoleConsumer, func() bool {
		return m.buf.IsEmpty() && m.consumed < m.consumeTarget
	})

	if m.consumed >= m.consumeTarget {
		m.itemAvail.Broadcast()
		m.mu.Unlock()
		return Op[T]{}, false
	}

	v, slot := m.buf.Read()
	m.consumed++
	m.stats.RecordRead(m.buf.Len())
	m.metrics.recordOp(RoleConsumer, m.buf.Len(), m.buf.Capacity())

	op := Op[T]{
		Slot:     slot,
		Value:    v,
		Produced: m.produced,
		Consumed: m.consumed,
		Occupied: m.buf.Len(),
		Snapshot: m.buf.Snapshot(),
	}

	m.spaceAvail.Signal()
	if m.consumed == m.consumeTarget {
		m.spaceAvail.Broadcast()
		m.itemAvail.Broadcast()
	}

	m.mu.Unlock()
	return op, true
}

// waitFor blocks on cond while blocked() holds, tracking wait time in
// statistics and metrics. Caller must hold the mutex.
func (m *Monitor[T]) waitFor(cond *sync.Cond, role string, blocked func() bool) {
	if !blocked() {
		return
	}

	start := time.Now()
	m.stats.RecordBlocked(role)
	m.metrics.workerBlocked(role)

	for blocked() {
		cond.Wait()
	}

	elapsed := time.Since(start)
	m.stats.RecordWait(role, elapsed)
	m.metrics.workerUnblocked(role, elapsed)
}

// Produced returns the number of items produced so far.
func (m *Monitor[T]) Produced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.produced
}

// Consumed returns the number of items consumed so far.
func (m *Monitor[T]) Consumed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consumed
}

// Occupied returns the number of live items currently buffered.
func (m *Monitor[T]) Occupied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Len()
}

// Capacity returns the fixed ring capacity.
func (m *Monitor[T]) Capacity() int {
	return m.buf.Capacity()
}

// ProduceTarget returns the configured production target.
func (m *Monitor[T]) ProduceTarget() int {
	return m.produceTarget
}

// ConsumeTarget returns the configured consumption target.
func (m *Monitor[T]) ConsumeTarget() int {
	return m.consumeTarget
}

// ProductionDone reports whether the production target has been reached.
// Worker loops use it as the optimistic pre-lock check; Produce itself
// re-verifies under the lock.
func (m *Monitor[T]) ProductionDone() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.produced >= m.produceTarget
}

// ConsumptionDone reports whether the consumption target has been reached.
func (m *Monitor[T]) ConsumptionDone() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consumed >= m.consumeTarget
}

// Done reports whether both targets have been reached and the buffer has
// drained, the terminal state of a run.
func (m *Monitor[T]) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.produced >= m.produceTarget &&
		m.consumed >= m.consumeTarget &&
		m.buf.IsEmpty()
}

// Snapshot returns a copy of the ring's slots.
func (m *Monitor[T]) Snapshot() []ring.Slot[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Snapshot()
}

// Stats returns the always-on statistics tracker.
func (m *Monitor[T]) Stats() *Statistics {
	return m.stats
}
