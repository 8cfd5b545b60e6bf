package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/c360/prodcon/errors"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		r, err := New[int](capacity)
		require.Error(t, err)
		assert.Nil(t, r)
		assert.True(t, cerrors.IsInit(err))
	}
}

func TestInitialState(t *testing.T) {
	r, err := New[int](10)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 10, r.Capacity())
	assert.True(t, r.IsEmpty())
	assert.False(t, r.IsFull())

	for i, slot := range r.Snapshot() {
		assert.False(t, slot.Occupied, "slot %d should start unoccupied", i)
		assert.Zero(t, slot.Value, "slot %d should start zeroed", i)
	}
}

func TestWriteReadAdvanceCursors(t *testing.T) {
	r, err := New[int](3)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Write(11))
	assert.Equal(t, 1, r.Write(22))
	assert.Equal(t, 2, r.Write(33))
	assert.True(t, r.IsFull())

	v, idx := r.Read()
	assert.Equal(t, 11, v)
	assert.Equal(t, 0, idx)

	v, idx = r.Read()
	assert.Equal(t, 22, v)
	assert.Equal(t, 1, idx)

	v, idx = r.Read()
	assert.Equal(t, 33, v)
	assert.Equal(t, 2, idx)
	assert.True(t, r.IsEmpty())
}

// Classic interleaving: capacity 3, five writes and five
// reads in produced order hit slots 0,1,2,0,1 and leave the ring empty.
func TestWraparoundSequence(t *testing.T) {
	r, err := New[int](3)
	require.NoError(t, err)

	wantSlots := []int{0, 1, 2, 0, 1}
	values := []int{5, 6, 7, 8, 9}

	var gotWrite, gotRead []int
	for _, v := range values {
		// Drain one item once the ring fills so writes can wrap.
		if r.IsFull() {
			_, idx := r.Read()
			gotRead = append(gotRead, idx)
		}
		gotWrite = append(gotWrite, r.Write(v))
	}
	for !r.IsEmpty() {
		_, idx := r.Read()
		gotRead = append(gotRead, idx)
	}

	assert.Equal(t, wantSlots, gotWrite)
	assert.Equal(t, wantSlots, gotRead)
	assert.True(t, r.IsEmpty())
	for i, slot := range r.Snapshot() {
		assert.False(t, slot.Occupied, "slot %d still occupied after drain", i)
	}
}

func TestReadRestoresSlotToUnoccupied(t *testing.T) {
	r, err := New[int](4)
	require.NoError(t, err)

	r.Write(42)
	require.True(t, r.Slot(0).Occupied)

	v, idx := r.Read()
	assert.Equal(t, 42, v)
	assert.Equal(t, 0, idx)

	// The consumed slot reads as empty until the next write wraps back
	// around to the same index.
	assert.False(t, r.Slot(0).Occupied)
	assert.Zero(t, r.Slot(0).Value)

	for i := 0; i < 4; i++ {
		r.Write(i + 100)
	}
	assert.True(t, r.Slot(0).Occupied)
	assert.Equal(t, 103, r.Slot(0).Value)
}

func TestSnapshotIsACopy(t *testing.T) {
	r, err := New[string](2)
	require.NoError(t, err)

	r.Write("a")
	snap := r.Snapshot()
	snap[0].Value = "mutated"

	assert.Equal(t, "a", r.Slot(0).Value)
}

func TestOccupiedCountNeverExceedsCapacity(t *testing.T) {
	r, err := New[int](5)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		r.Write(i)
		assert.LessOrEqual(t, r.Len(), r.Capacity())
	}
	assert.True(t, r.IsFull())

	for i := 0; i < 5; i++ {
		r.Read()
		assert.GreaterOrEqual(t, r.Len(), 0)
	}
	assert.True(t, r.IsEmpty())
}
