// Package monitor implements the synchronization monitor at the heart of
// the bounded-buffer system: a single mutex plus two condition variables
// ("space available" and "item available") guarding a fixed-capacity
// ring, with fixed production and consumption targets.
//
// # Protocol
//
// Produce: acquire the lock; while the ring is full and the production
// target is unmet, wait on space-available (the wait releases the lock
// and reacquires it atomically on wake); re-check the target under the
// lock and pass through untouched if it was met while blocked; otherwise
// write, advance counters, signal item-available, release.
//
// Consume is symmetric, driven by the consumption target and the
// item-available condition.
//
// Two details carry the correctness burden:
//
//   - The wait condition is re-checked in a loop after every wake, which
//     makes spurious wakeups and signal races harmless.
//   - The target is re-checked after acquiring the lock, so workers that
//     wake late (after other workers already met the target) pass through
//     the critical section without touching the buffer and observe
//     termination instead of producing or consuming a surplus item.
//
// Each successful operation signals exactly one counterpart waiter, since
// it frees or fills exactly one slot. The moment either target is
// reached, both conditions are broadcast so that no residual worker
// remains parked; combined with the pass-through re-check this guarantees
// clean shutdown with no stranded goroutines.
//
// # Observability
//
// Statistics (operation counts, block counts, wait times, peak
// occupancy) are always collected. Prometheus metrics are opt-in via
// WithMetrics and feed the shared metric.Metrics collectors. Neither is
// part of the synchronization contract.
package monitor
