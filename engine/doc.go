// Package engine orchestrates a complete bounded-buffer run.
//
// The Engine owns the component graph and its lifecycle:
//
//	config ──> Engine.Initialize ──> monitor + pool + observer (+ metrics)
//	           Engine.Start      ──> run workers to completion, verify
//	           Engine.Stop       ──> shut down the metrics endpoint
//
// Start blocks until both targets are reached and every worker has
// joined, then verifies the completion invariants: produced and consumed
// totals equal the configured target and the buffer is empty. A
// violation marks the engine failed and returns a fatal error.
//
// # Lifecycle
//
//	created ──> initialized ──> started ──> stopped
//	                                  └──> failed
//
// Each engine executes exactly one run; create a new engine for a new
// run. The run is identified by a UUID carried in logs and the Result.
package engine
