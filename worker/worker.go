package worker

import (
	"fmt"
	"sync/atomic"
)

// Role identifies which side of the buffer a worker drives.
type Role int

const (
	// RoleProducer generates values and writes them into the buffer
	RoleProducer Role = iota
	// RoleConsumer removes values from the buffer
	RoleConsumer
)

// String returns a string representation of the role
func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleConsumer:
		return "consumer"
	default:
		return "unknown"
	}
}

// Tag returns the single-letter trace prefix for the role ("P" or "C").
func (r Role) Tag() string {
	switch r {
	case RoleProducer:
		return "P"
	case RoleConsumer:
		return "C"
	default:
		return "?"
	}
}

// State represents the current lifecycle state of a worker
type State int32

const (
	// StateRunning indicates the worker is between operations
	StateRunning State = iota
	// StateWaiting indicates the worker is inside a monitor operation,
	// possibly blocked on a condition variable
	StateWaiting
	// StateMutating indicates the worker just completed a buffer mutation
	StateMutating
	// StateTerminated indicates the worker observed its target reached
	// and exited its loop. Terminal and irreversible.
	StateTerminated
)

// String returns a string representation of the worker state
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateMutating:
		return "mutating"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Worker is the descriptor for one producer or consumer: a role and a
// 1-based ordinal within that role. Descriptors are created by the pool
// and read-only for the worker's lifetime.
type Worker struct {
	Role    Role
	Ordinal int
}

// Name returns the worker's trace identity, e.g. "P1" or "C3".
func (w Worker) Name() string {
	return fmt.Sprintf("%s%d", w.Role.Tag(), w.Ordinal)
}

// workerState pairs a descriptor with its observable lifecycle state.
type workerState struct {
	Worker
	state atomic.Int32
}

// setState transitions the worker unless it has already terminated.
func (w *workerState) setState(s State) {
	for {
		cur := w.state.Load()
		if State(cur) == StateTerminated {
			return
		}
		if w.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

// terminate moves the worker to its terminal state exactly once.
func (w *workerState) terminate() {
	w.state.Store(int32(StateTerminated))
}

// State returns the worker's current lifecycle state.
func (w *workerState) State() State {
	return State(w.state.Load())
}

// Status is a point-in-time view of one worker for inspection.
type Status struct {
	Worker Worker
	State  State
}
