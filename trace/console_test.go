package trace

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prodcon/monitor"
	"github.com/c360/prodcon/ring"
	"github.com/c360/prodcon/worker"
)

func makeEvent(role worker.Role, ordinal, slot, value int, snapshot []ring.Slot[int]) worker.Event[int] {
	return worker.Event[int]{
		Worker: worker.Worker{Role: role, Ordinal: ordinal},
		Op: monitor.Op[int]{
			Slot:     slot,
			Value:    value,
			Snapshot: snapshot,
		},
	}
}

func TestConsoleObserverFormat(t *testing.T) {
	var buf bytes.Buffer
	obs := NewConsoleObserver(&buf, 0)

	snapshot := make([]ring.Slot[int], 10)
	snapshot[3] = ring.Slot[int]{Value: 42, Occupied: true}

	obs.Observe(makeEvent(worker.RoleProducer, 1, 3, 42, snapshot))

	want := "P1: buffer[3] = 42\n" +
		"0 0 0 42 0 0 0 0 0 0\n\n"
	assert.Equal(t, want, buf.String())
}

func TestConsoleObserverConsumerAndSentinel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewConsoleObserver(&buf, -1)

	// Slot 0 was just consumed: unoccupied, rendered as the sentinel.
	snapshot := make([]ring.Slot[int], 3)
	snapshot[1] = ring.Slot[int]{Value: 7, Occupied: true}

	obs.Observe(makeEvent(worker.RoleConsumer, 2, 0, 9, snapshot))

	want := "C2: buffer[0] = 9\n" +
		"-1 7 -1\n\n"
	assert.Equal(t, want, buf.String())
}

func TestConsoleObserverConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	obs := NewConsoleObserver(&buf, 0)

	snapshot := make([]ring.Slot[int], 2)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(ordinal int) {
			defer wg.Done()
			obs.Observe(makeEvent(worker.RoleProducer, ordinal, 0, 1, snapshot))
		}(i + 1)
	}
	wg.Wait()

	// Every record is exactly three lines: trace, dump, blank.
	records := strings.Split(strings.TrimSuffix(buf.String(), "\n\n"), "\n\n")
	require.Len(t, records, 20)
	for _, rec := range records {
		lines := strings.Split(rec, "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], ": buffer[0] = 1")
		assert.Equal(t, "0 0", lines[1])
	}
}

func TestSlogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := NewSlogObserver[int](logger)

	snapshot := make([]ring.Slot[int], 2)
	obs.Observe(makeEvent(worker.RoleConsumer, 1, 1, 55, snapshot))

	out := buf.String()
	assert.Contains(t, out, "buffer operation")
	assert.Contains(t, out, "worker=C1")
	assert.Contains(t, out, "role=consumer")
	assert.Contains(t, out, "slot=1")
	assert.Contains(t, out, "value=55")
}
