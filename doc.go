// Package prodcon implements a bounded-buffer producer/consumer core:
// a fixed-capacity circular buffer shared by N producer and M consumer
// workers, coordinated by a monitor (mutex plus two condition variables)
// so producers block when the buffer is full and consumers block when it
// is empty, with a fixed total amount of work per run.
//
// # Architecture
//
// The packages layer leaf-first:
//
//	┌─────────────────────────────────────┐
//	│            cmd/prodcon              │  CLI, flags, logging
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│              engine                 │  Lifecycle orchestration,
//	│  (initialize, start, stop, verify)  │  conservation checks
//	└─────────────────────────────────────┘
//	           ↓ runs
//	┌─────────────────────────────────────┐
//	│              worker                 │  Producer/consumer loops,
//	│        (roles, states, pool)        │  pool spawn and join
//	└─────────────────────────────────────┘
//	           ↓ synchronizes via
//	┌─────────────────────────────────────┐
//	│             monitor                 │  Mutex + condition variables,
//	│      (produce/consume protocol)     │  target accounting
//	└─────────────────────────────────────┘
//	           ↓ stores in
//	┌─────────────────────────────────────┐
//	│               ring                  │  Circular storage, cursors,
//	│        (slots, wraparound)          │  no locking of its own
//	└─────────────────────────────────────┘
//
// Supporting packages: config (defaults, JSON loading, validation),
// errors (classified errors), metric (Prometheus registry and server),
// trace (pluggable operation observers), testutil (test helpers).
//
// The monitor is the only synchronization point in the system: the ring
// has no thread-safety of its own, and workers never touch shared state
// outside a monitor operation.
package prodcon
