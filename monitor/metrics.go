package monitor

import (
	"time"

	"github.com/c360/prodcon/metric"
)

// monitorMetrics bridges monitor activity to the core Prometheus
// metrics. A nil receiver is valid and makes every method a no-op, so
// the hot path never branches on configuration.
type monitorMetrics struct {
	core *metric.Metrics
}

func newMonitorMetrics(registry *metric.MetricsRegistry) *monitorMetrics {
	if registry == nil {
		return nil
	}
	return &monitorMetrics{core: registry.CoreMetrics()}
}

// recordOp tracks one successful operation and the resulting occupancy.
func (m *monitorMetrics) recordOp(role string, occupied, capacity int) {
	if m == nil {
		return
	}
	m.core.OpsTotal.WithLabelValues(role).Inc()
	m.core.BufferOccupancy.Set(float64(occupied))
	m.core.BufferUtilization.Set(float64(occupied) / float64(capacity))
}

// workerBlocked tracks a worker going to sleep on a condition variable.
func (m *monitorMetrics) workerBlocked(role string) {
	if m == nil {
		return
	}
	m.core.WorkersBlocked.WithLabelValues(role).Inc()
}

// workerUnblocked tracks a worker waking up after elapsed blocked time.
func (m *monitorMetrics) workerUnblocked(role string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.core.WorkersBlocked.WithLabelValues(role).Dec()
	m.core.OpWaitSeconds.WithLabelValues(role).Observe(elapsed.Seconds())
}
