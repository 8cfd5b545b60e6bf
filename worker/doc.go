// Package worker drives the producer and consumer loops over a shared
// monitor.
//
// Each worker is described by a Role (producer or consumer) and a
// 1-based ordinal within that role. The Pool spawns one goroutine per
// worker, runs each loop to termination, and joins them all; a pool runs
// exactly once, because the workload is a fixed amount of work rather
// than a service.
//
// # Worker state machine
//
//	running ──> waiting ──> mutating ──> running ...
//	                   │
//	                   └──> terminated (terminal, exactly once)
//
// A worker terminates only after observing, inside the monitor, that its
// role's global target has been reached; local exhaustion or a momentary
// block never ends a loop early. The loop condition outside the lock is
// optimistic; the monitor's re-check under the lock is authoritative.
//
// Observers receive an Event after every successful operation, carrying
// the worker identity and the lock-consistent operation snapshot. The
// trace package provides console and slog implementations.
package worker
