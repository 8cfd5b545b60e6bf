// Package ring provides the fixed-capacity circular storage underlying
// the producer/consumer monitor.
//
// A Ring has no locking of its own: correctness under concurrent access
// is entirely delegated to the caller, which must serialize every
// operation. In this system that caller is the monitor package.
package ring

import (
	"github.com/c360/prodcon/errors"
)

// Slot is one storage cell. Occupied distinguishes a live value from an
// empty cell, so "empty" is a representable state rather than a magic
// value colliding with real data.
type Slot[T any] struct {
	Value    T
	Occupied bool
}

// Ring is a fixed-capacity circular buffer with wraparound addressing.
// A slot holds a live value if and only if it lies within the currently
// occupied region between the read and write cursors.
type Ring[T any] struct {
	slots       []Slot[T]
	writeCursor int
	readCursor  int
	occupied    int
}

// New creates an empty ring with the given capacity.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, errors.WrapInit(errors.ErrInvalidCapacity, "Ring", "New",
			"allocate storage")
	}
	return &Ring[T]{
		slots: make([]Slot[T], capacity),
	}, nil
}

// Write stores v at the write cursor and advances the cursor modulo
// capacity. It returns the slot index used.
//
// Precondition (caller-enforced under the monitor): the ring is not full.
func (r *Ring[T]) Write(v T) int {
	idx := r.writeCursor
	r.slots[idx] = Slot[T]{Value: v, Occupied: true}
	r.writeCursor = (r.writeCursor + 1) % len(r.slots)
	r.occupied++
	return idx
}

// Read returns the value at the read cursor, clears that slot back to
// unoccupied, and advances the cursor modulo capacity. It returns the
// value and the slot index it was read from.
//
// Precondition (caller-enforced under the monitor): the ring is not empty.
func (r *Ring[T]) Read() (T, int) {
	idx := r.readCursor
	v := r.slots[idx].Value
	r.slots[idx] = Slot[T]{}
	r.readCursor = (r.readCursor + 1) % len(r.slots)
	r.occupied--
	return v, idx
}

// Len returns the number of live items currently in the ring.
func (r *Ring[T]) Len() int {
	return r.occupied
}

// Capacity returns the fixed number of slots.
func (r *Ring[T]) Capacity() int {
	return len(r.slots)
}

// IsFull reports whether every slot holds a live value.
func (r *Ring[T]) IsFull() bool {
	return r.occupied == len(r.slots)
}

// IsEmpty reports whether no slot holds a live value.
func (r *Ring[T]) IsEmpty() bool {
	return r.occupied == 0
}

// Snapshot returns a copy of all slots in storage order, occupied or not.
// Callers may retain or mutate the result freely.
func (r *Ring[T]) Snapshot() []Slot[T] {
	out := make([]Slot[T], len(r.slots))
	copy(out, r.slots)
	return out
}

// Slot returns a copy of the slot at idx. It exists for tests and
// observers that assert on individual cells.
func (r *Ring[T]) Slot(idx int) Slot[T] {
	return r.slots[idx]
}
