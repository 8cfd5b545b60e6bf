package monitor

import (
	"github.com/c360/prodcon/metric"
)

// Option configures monitor behavior using the functional options pattern.
type Option func(*monitorOptions)

// monitorOptions holds internal configuration for monitor instances.
// Statistics are ALWAYS collected; Prometheus metrics are optional.
type monitorOptions struct {
	registry *metric.MetricsRegistry
}

// WithMetrics enables Prometheus metrics export for monitor activity.
// If registry is nil, this option is ignored.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(opts *monitorOptions) {
		if registry != nil {
			opts.registry = registry
		}
	}
}

// applyOptions applies functional options to create final configuration.
func applyOptions(options ...Option) *monitorOptions {
	opts := &monitorOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
