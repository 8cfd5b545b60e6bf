// Package metric provides Prometheus metrics infrastructure for prodcon.
//
// A MetricsRegistry owns a private prometheus.Registry pre-populated with
// the core platform metrics (engine status, operation totals, buffer
// occupancy and utilization, blocked-worker gauges, wait-time histograms)
// plus the Go runtime collectors. Components register their own metrics
// through the MetricsRegistrar interface, which rejects duplicate names
// at both the registry and Prometheus level.
//
// The optional Server exposes the registry over HTTP at /metrics with a
// /health endpoint alongside. Metrics are an observability side channel:
// nothing in the synchronization protocol depends on them, and the whole
// package is inert unless the CLI enables it.
package metric
