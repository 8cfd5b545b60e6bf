package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics (not test-specific)
type Metrics struct {
	// Engine metrics
	EngineStatus prometheus.Gauge
	RunDuration  prometheus.Histogram
	ErrorsTotal  *prometheus.CounterVec

	// Operation metrics
	OpsTotal      *prometheus.CounterVec
	OpWaitSeconds *prometheus.HistogramVec

	// Buffer metrics
	BufferOccupancy   prometheus.Gauge
	BufferUtilization prometheus.Gauge

	// Worker metrics
	WorkersBlocked    *prometheus.GaugeVec
	WorkersTerminated *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		EngineStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "engine",
				Name:      "status",
				Help:      "Engine status (0=created, 1=initialized, 2=started, 3=stopped, 4=failed)",
			},
		),

		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "prodcon",
				Subsystem: "engine",
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of a full produce/consume run",
				Buckets:   prometheus.DefBuckets,
			},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prodcon",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component", "class"},
		),

		OpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prodcon",
				Subsystem: "ops",
				Name:      "total",
				Help:      "Total number of successful buffer operations",
			},
			[]string{"role"},
		),

		OpWaitSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "prodcon",
				Subsystem: "ops",
				Name:      "wait_seconds",
				Help:      "Time spent blocked on a condition variable before an operation",
				Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
			},
			[]string{"role"},
		),

		BufferOccupancy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "buffer",
				Name:      "occupancy",
				Help:      "Current number of live items in the buffer",
			},
		),

		BufferUtilization: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "buffer",
				Name:      "utilization",
				Help:      "Buffer utilization as a percentage (0.0 to 1.0)",
			},
		),

		WorkersBlocked: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "workers",
				Name:      "blocked",
				Help:      "Number of workers currently blocked on a condition variable",
			},
			[]string{"role"},
		),

		WorkersTerminated: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "workers",
				Name:      "terminated",
				Help:      "Number of workers that have reached their terminal state",
			},
			[]string{"role"},
		),
	}
}
