package testutil

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// QuietLogger returns a logger that discards all output, keeping test
// output readable.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SequenceGenerator returns a goroutine-safe generator yielding start,
// start+1, start+2 and so on. Deterministic value sources make
// conservation assertions exact.
func SequenceGenerator(start int) func() int {
	var n atomic.Int64
	n.Store(int64(start) - 1)
	return func() int {
		return int(n.Add(1))
	}
}
