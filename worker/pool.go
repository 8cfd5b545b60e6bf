package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/metric"
	"github.com/c360/prodcon/monitor"
)

// Pool spawns N producer and M consumer workers over a shared monitor
// and joins them. A pool runs at most once: the workload is a fixed
// amount of work, not a service.
type Pool[T any] struct {
	// Configuration
	monitor   *monitor.Monitor[T]
	producers int
	consumers int
	generate  func() T
	observer  Observer[T]
	logger    *slog.Logger

	// Runtime state
	workers []*workerState

	// Lifecycle management
	lifecycleMu sync.Mutex
	started     bool
	finished    bool

	// Metrics configuration
	metricsRegistry *metric.MetricsRegistry
	metrics         *poolMetrics
}

// poolMetrics holds pool-level Prometheus metrics.
type poolMetrics struct {
	workers *prometheus.GaugeVec
	core    *metric.Metrics
}

// Option represents a configuration option for the pool
type Option[T any] func(*Pool[T])

// WithGenerator sets the value source for producers. Required whenever
// the pool has producers.
func WithGenerator[T any](generate func() T) Option[T] {
	return func(p *Pool[T]) {
		p.generate = generate
	}
}

// WithObserver sets the observer notified after every successful
// operation. Defaults to NopObserver.
func WithObserver[T any](observer Observer[T]) Option[T] {
	return func(p *Pool[T]) {
		if observer != nil {
			p.observer = observer
		}
	}
}

// WithLogger sets the structured logger for worker lifecycle events.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(p *Pool[T]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetricsRegistry configures the pool to register metrics with the
// framework's registry
func WithMetricsRegistry[T any](registry *metric.MetricsRegistry) Option[T] {
	return func(p *Pool[T]) {
		p.metricsRegistry = registry
	}
}

// NewPool creates a pool of producers+consumers workers sharing m.
// Worker counts must be positive; a nil generator panics, mirroring the
// contract that a pool without a value source is a programming error.
func NewPool[T any](m *monitor.Monitor[T], producers, consumers int, opts ...Option[T]) (*Pool[T], error) {
	if m == nil {
		return nil, errors.WrapInit(ErrNilMonitor, "Pool", "NewPool", "validate monitor")
	}
	if producers <= 0 || consumers <= 0 {
		return nil, errors.WrapUsage(errors.ErrInvalidWorkerCount, "Pool", "NewPool",
			"validate worker counts")
	}

	pool := &Pool[T]{
		monitor:   m,
		producers: producers,
		consumers: consumers,
		observer:  NopObserver[T]{},
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		opt(pool)
	}

	if pool.generate == nil {
		panic(ErrNilGenerator)
	}

	// Build descriptors: ordinals are 1-based within each role.
	pool.workers = make([]*workerState, 0, producers+consumers)
	for i := 1; i <= producers; i++ {
		pool.workers = append(pool.workers, &workerState{
			Worker: Worker{Role: RoleProducer, Ordinal: i},
		})
	}
	for i := 1; i <= consumers; i++ {
		pool.workers = append(pool.workers, &workerState{
			Worker: Worker{Role: RoleConsumer, Ordinal: i},
		})
	}

	// Initialize metrics if registry provided
	if pool.metricsRegistry != nil {
		if err := pool.initializeMetrics(); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

// initializeMetrics creates and registers pool metrics with the
// framework's registry
func (p *Pool[T]) initializeMetrics() error {
	workers := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "prodcon",
		Subsystem: "pool",
		Name:      "workers",
		Help:      "Number of workers spawned by role",
	}, []string{"role"})

	if err := p.metricsRegistry.RegisterGaugeVec("pool", "workers", workers); err != nil {
		return err
	}

	p.metrics = &poolMetrics{
		workers: workers,
		core:    p.metricsRegistry.CoreMetrics(),
	}
	return nil
}

// Run spawns one goroutine per worker and blocks until every worker has
// terminated. The context is passed through for lifecycle consistency;
// the protocol itself runs to completion and is not cancellable, so a
// run ends only when both targets are reached.
func (p *Pool[T]) Run(ctx context.Context) error {
	p.lifecycleMu.Lock()
	if p.started {
		p.lifecycleMu.Unlock()
		return errors.WrapLifecycle(errors.ErrAlreadyStarted, "Pool", "Run", "spawn workers")
	}
	p.started = true
	p.lifecycleMu.Unlock()

	if p.metrics != nil {
		p.metrics.workers.WithLabelValues(RoleProducer.String()).Set(float64(p.producers))
		p.metrics.workers.WithLabelValues(RoleConsumer.String()).Set(float64(p.consumers))
	}

	p.logger.Info("starting workers",
		"producers", p.producers,
		"consumers", p.consumers,
		"produce_target", p.monitor.ProduceTarget(),
		"consume_target", p.monitor.ConsumeTarget(),
		"capacity", p.monitor.Capacity())

	g := new(errgroup.Group)
	for _, ws := range p.workers {
		g.Go(func() error {
			return p.runWorker(ctx, ws)
		})
	}
	err := g.Wait()

	p.lifecycleMu.Lock()
	p.finished = true
	p.lifecycleMu.Unlock()

	p.logger.Info("all workers joined",
		"produced", p.monitor.Produced(),
		"consumed", p.monitor.Consumed(),
		"occupied", p.monitor.Occupied())

	return err
}

// Finished reports whether a run has completed.
func (p *Pool[T]) Finished() bool {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()
	return p.finished
}

// Workers returns a point-in-time view of every worker and its state.
func (p *Pool[T]) Workers() []Status {
	out := make([]Status, len(p.workers))
	for i, ws := range p.workers {
		out[i] = Status{Worker: ws.Worker, State: ws.State()}
	}
	return out
}

// runWorker drives one worker loop to termination.
func (p *Pool[T]) runWorker(_ context.Context, ws *workerState) error {
	switch ws.Role {
	case RoleProducer:
		p.runProducer(ws)
	case RoleConsumer:
		p.runConsumer(ws)
	}

	ws.terminate()
	if p.metrics != nil {
		p.metrics.core.WorkersTerminated.WithLabelValues(ws.Role.String()).Inc()
	}
	p.logger.Debug("worker terminated", "worker", ws.Name())
	return nil
}

// runProducer repeats the producer protocol until the shared production
// target is reached. The loop condition is an optimistic pre-lock check;
// Produce re-verifies under the lock before mutating, because multiple
// producers race on the counter.
func (p *Pool[T]) runProducer(ws *workerState) {
	for !p.monitor.ProductionDone() {
		v := p.generate()

		ws.setState(StateWaiting)
		op, ok := p.monitor.Produce(v)
		if !ok {
			return
		}

		ws.setState(StateMutating)
		p.observer.Observe(Event[T]{Worker: ws.Worker, Op: op})
		ws.setState(StateRunning)
	}
}

// runConsumer is the symmetric loop driven by the consumption target.
func (p *Pool[T]) runConsumer(ws *workerState) {
	for !p.monitor.ConsumptionDone() {
		ws.setState(StateWaiting)
		op, ok := p.monitor.Consume()
		if !ok {
			return
		}

		ws.setState(StateMutating)
		p.observer.Observe(Event[T]{Worker: ws.Worker, Op: op})
		ws.setState(StateRunning)
	}
}
