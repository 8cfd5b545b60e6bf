// Package errors provides standardized error handling patterns for prodcon.
//
// # Overview
//
// The package implements a four-class error taxonomy matched to the
// program's single-run batch nature: Usage (bad command-line input,
// reported before any worker starts), Init (resource construction or
// registration failures), Lifecycle (start/stop ordering violations),
// and Fatal (invariant violations at completion).
//
// Every failure in this system is treated as non-recoverable at the
// point of detection; there is no retry machinery. Logical violations of
// the monitor protocol (for example waking with the awaited condition
// still false) are structurally prevented by the re-check loop and are
// never surfaced as runtime errors.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three things fall out of this: logs are mechanically parseable, the
// original error survives for errors.Is/errors.As, and the class travels
// with the chain:
//
//	if err := eng.Start(ctx); err != nil {
//	    if errors.IsUsage(err) {
//	        // print usage, exit 1
//	    }
//	}
//
// Use the standard error variables instead of creating ad hoc messages:
//
//	if producers <= 0 {
//	    return errors.ErrInvalidWorkerCount
//	}
package errors
