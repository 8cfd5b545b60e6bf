package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/metric"
)

// waitAll fails the test if the group does not finish in time. Every
// concurrent test runs under it so a protocol bug shows up as a test
// failure instead of a hung suite.
func waitAll(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("workers did not finish in time: likely deadlock or stranded waiter")
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New[int](0, 10, 10)
	require.Error(t, err)
	assert.True(t, cerrors.IsInit(err))

	_, err = New[int](10, -1, -1)
	require.Error(t, err)
	assert.True(t, cerrors.IsInit(err))

	_, err = New[int](10, 5, 7)
	require.Error(t, err)
	assert.True(t, cerrors.IsInit(err))

	m, err := New[int](10, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Capacity())
	assert.Equal(t, 100, m.ProduceTarget())
	assert.Equal(t, 100, m.ConsumeTarget())
	assert.Equal(t, 0, m.Occupied())
	assert.False(t, m.ProductionDone())
	assert.False(t, m.Done())
}

func TestProduceConsumeSingleThreaded(t *testing.T) {
	m, err := New[int](10, 3, 3)
	require.NoError(t, err)

	op, ok := m.Produce(41)
	require.True(t, ok)
	assert.Equal(t, 0, op.Slot)
	assert.Equal(t, 41, op.Value)
	assert.Equal(t, 1, op.Produced)
	assert.Equal(t, 1, op.Occupied)

	op, ok = m.Produce(42)
	require.True(t, ok)
	assert.Equal(t, 1, op.Slot)
	assert.Equal(t, 2, op.Occupied)

	op, ok = m.Consume()
	require.True(t, ok)
	assert.Equal(t, 0, op.Slot)
	assert.Equal(t, 41, op.Value)
	assert.Equal(t, 1, op.Consumed)
	assert.Equal(t, 1, op.Occupied)

	// The consumed slot reads back as unoccupied in the op snapshot.
	assert.False(t, op.Snapshot[0].Occupied)
	assert.True(t, op.Snapshot[1].Occupied)
}

// Classic scenario: capacity 3, target 5, one producer and one
// consumer in strict alternation. Writes and reads both hit slots
// 0,1,2,0,1 and the run ends drained with both counters at 5.
func TestWraparoundScenario(t *testing.T) {
	m, err := New[int](3, 5, 5)
	require.NoError(t, err)

	wantSlots := []int{0, 1, 2, 0, 1}
	for i, want := range wantSlots {
		op, ok := m.Produce(100 + i)
		require.True(t, ok)
		assert.Equal(t, want, op.Slot, "write %d", i)
	}

	// Sixth produce is refused: target reached.
	_, ok := m.Produce(999)
	assert.False(t, ok)

	for i, want := range wantSlots {
		op, ok := m.Consume()
		require.True(t, ok)
		assert.Equal(t, want, op.Slot, "read %d", i)
		assert.Equal(t, 100+i, op.Value, "read %d in produced order", i)
	}

	_, ok = m.Consume()
	assert.False(t, ok)

	assert.Equal(t, 5, m.Produced())
	assert.Equal(t, 5, m.Consumed())
	assert.Equal(t, 0, m.Occupied())
	assert.True(t, m.Done())
	for i, slot := range m.Snapshot() {
		assert.False(t, slot.Occupied, "slot %d not restored to empty", i)
	}
}

func TestZeroTargetTerminatesImmediately(t *testing.T) {
	m, err := New[int](10, 0, 0)
	require.NoError(t, err)

	_, ok := m.Produce(1)
	assert.False(t, ok)
	_, ok = m.Consume()
	assert.False(t, ok)

	assert.Equal(t, 0, m.Occupied())
	assert.True(t, m.Done())
	assert.Zero(t, m.Stats().Writes())
	assert.Zero(t, m.Stats().Reads())
}

func TestCapacityInvariantUnderContention(t *testing.T) {
	const (
		capacity  = 3
		target    = 10
		producers = 3
	)

	m, err := New[int](capacity, target, target)
	require.NoError(t, err)

	var mu sync.Mutex
	written := make(map[int]int)
	consumed := make(map[int]int)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			v := base
			for !m.ProductionDone() {
				op, ok := m.Produce(v)
				if !ok {
					return
				}
				assert.LessOrEqual(t, op.Occupied, capacity)
				mu.Lock()
				written[op.Value]++
				mu.Unlock()
				v++
			}
		}(1000 * (p + 1))
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for !m.ConsumptionDone() {
			op, ok := m.Consume()
			if !ok {
				return
			}
			assert.GreaterOrEqual(t, op.Occupied, 0)
			mu.Lock()
			consumed[op.Value]++
			mu.Unlock()
		}
	}()

	waitAll(t, &wg, 10*time.Second)

	assert.Equal(t, target, m.Produced())
	assert.Equal(t, target, m.Consumed())
	assert.Equal(t, 0, m.Occupied())
	assert.True(t, m.Done())

	// Despite 3 racing producers, occupancy never exceeded capacity.
	assert.LessOrEqual(t, m.Stats().MaxOccupied(), int64(capacity))

	// The consumer drained exactly the set of values written.
	assert.Equal(t, written, consumed)
}

func TestProgressManyWorkers(t *testing.T) {
	const target = 100

	m, err := New[int](10, target, target)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := m.Produce(7); !ok {
					return
				}
			}
		}()
	}
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := m.Consume(); !ok {
					return
				}
			}
		}()
	}

	waitAll(t, &wg, 10*time.Second)

	assert.Equal(t, target, m.Produced())
	assert.Equal(t, target, m.Consumed())
	assert.Equal(t, 0, m.Occupied())
}

// Consumers parked on an empty buffer must all wake and terminate once
// the last item is consumed, even though only one of them gets an item.
func TestNoStrandedWaitersAfterCompletion(t *testing.T) {
	const consumers = 8

	m, err := New[int](10, 1, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	started := make(chan struct{}, consumers)
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			for {
				if _, ok := m.Consume(); !ok {
					return
				}
			}
		}()
	}
	for c := 0; c < consumers; c++ {
		<-started
	}

	// Give the consumers a moment to park on item-available.
	time.Sleep(10 * time.Millisecond)

	_, ok := m.Produce(5)
	require.True(t, ok)

	waitAll(t, &wg, 5*time.Second)

	assert.Equal(t, 1, m.Consumed())
	assert.True(t, m.Done())
}

// Producers parked on a full buffer must all wake and terminate once the
// production target is reached by their peers.
func TestBlockedProducersObserveTermination(t *testing.T) {
	const producers = 4

	// Capacity 2, target 4: the buffer fills immediately and the
	// remaining producers park on space-available.
	m, err := New[int](2, 4, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := m.Produce(9); !ok {
					return
				}
			}
		}()
	}

	// Let the first two producers fill the buffer and the rest park.
	time.Sleep(10 * time.Millisecond)

	for i := 0; i < 4; i++ {
		_, ok := m.Consume()
		require.True(t, ok, "consume %d", i)
	}

	waitAll(t, &wg, 5*time.Second)

	assert.Equal(t, 4, m.Produced())
	assert.Equal(t, 4, m.Consumed())
	assert.True(t, m.Done())
}

func TestStatisticsTracking(t *testing.T) {
	m, err := New[int](2, 4, 4)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, ok := m.Produce(i)
		require.True(t, ok)
	}
	for i := 0; i < 2; i++ {
		_, ok := m.Consume()
		require.True(t, ok)
	}

	stats := m.Stats().Summary()
	assert.Equal(t, int64(2), stats.Writes)
	assert.Equal(t, int64(2), stats.Reads)
	assert.Equal(t, int64(2), stats.MaxOccupied)
	assert.Equal(t, int64(0), stats.CurrentOccupied)
}

func TestWithMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	m, err := New[int](4, 2, 2, WithMetrics(registry))
	require.NoError(t, err)

	_, ok := m.Produce(1)
	require.True(t, ok)
	_, ok = m.Produce(2)
	require.True(t, ok)
	_, ok = m.Consume()
	require.True(t, ok)

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, f := range families {
		for _, metricValue := range f.GetMetric() {
			key := f.GetName()
			for _, label := range metricValue.GetLabel() {
				key += "{" + label.GetValue() + "}"
			}
			switch {
			case metricValue.GetCounter() != nil:
				values[key] = metricValue.GetCounter().GetValue()
			case metricValue.GetGauge() != nil:
				values[key] = metricValue.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, float64(2), values["prodcon_ops_total{producer}"])
	assert.Equal(t, float64(1), values["prodcon_ops_total{consumer}"])
	assert.Equal(t, float64(1), values["prodcon_buffer_occupancy"])
}
