package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/prodcon/config"
	"github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/metric"
	"github.com/c360/prodcon/monitor"
	"github.com/c360/prodcon/trace"
	"github.com/c360/prodcon/worker"
)

// State represents the engine lifecycle state.
type State int

const (
	// StateCreated means the engine exists but owns no components yet.
	StateCreated State = iota
	// StateInitialized means all components are built and wired.
	StateInitialized
	// StateStarted means a run is in progress or has completed.
	StateStarted
	// StateStopped means the engine has shut down cleanly.
	StateStopped
	// StateFailed means the run violated a completion invariant.
	StateFailed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result summarizes a completed run.
type Result struct {
	RunID    string               `json:"run_id"`
	Produced int                  `json:"produced"`
	Consumed int                  `json:"consumed"`
	Occupied int                  `json:"occupied"`
	Duration time.Duration        `json:"duration"`
	Stats    monitor.StatsSummary `json:"stats"`
}

// Engine owns the full component graph for one bounded-buffer run:
// monitor, worker pool, observers and the optional metrics endpoint. It
// follows the Initialize/Start/Stop lifecycle; a single engine executes
// a single run.
type Engine struct {
	mu    sync.Mutex
	state State
	runID string

	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer

	registry *metric.MetricsRegistry
	server   *metric.Server

	mon      *monitor.Monitor[int]
	pool     *worker.Pool[int]
	observer worker.Observer[int]
	generate func() int

	result *Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOutput sets the writer for console trace output. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.out = w
		}
	}
}

// WithObserver replaces the trace observer the engine would otherwise
// build from its configuration.
func WithObserver(obs worker.Observer[int]) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observer = obs
		}
	}
}

// WithGenerator replaces the default random value source.
func WithGenerator(generate func() int) Option {
	return func(e *Engine) {
		if generate != nil {
			e.generate = generate
		}
	}
}

// New creates an engine for the given configuration. The configuration
// is validated and cloned; later mutations by the caller have no effect.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.WrapInit(
			fmt.Errorf("%w: nil", errors.ErrInvalidConfig),
			"Engine", "New", "validate configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		state:  StateCreated,
		runID:  uuid.New().String(),
		cfg:    cfg.Clone(),
		logger: slog.Default(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Initialize builds and wires all components: the metrics registry and
// server when enabled, the monitor, the value generator, the trace
// observer and the worker pool.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCreated {
		return errors.WrapLifecycle(errors.ErrAlreadyStarted,
			"Engine", "Initialize", "initialize components")
	}

	var monitorOpts []monitor.Option
	if e.cfg.Metrics.Enabled {
		e.registry = metric.NewMetricsRegistry()
		e.server = metric.NewServer(e.cfg.Metrics.Port, e.cfg.Metrics.Path, e.registry)
		monitorOpts = append(monitorOpts, monitor.WithMetrics(e.registry))
	}

	mon, err := monitor.New[int](e.cfg.Capacity,
		e.cfg.ProduceTarget, e.cfg.ConsumeTarget, monitorOpts...)
	if err != nil {
		return err
	}
	e.mon = mon

	if e.generate == nil {
		e.generate = newGenerator(e.cfg.Seed)
	}
	if e.observer == nil {
		if e.cfg.Trace {
			e.observer = trace.NewConsoleObserver(e.out, e.cfg.Sentinel)
		} else {
			e.observer = worker.NopObserver[int]{}
		}
	}

	poolOpts := []worker.Option[int]{
		worker.WithGenerator(e.generate),
		worker.WithObserver(e.observer),
		worker.WithLogger[int](e.logger),
	}
	if e.registry != nil {
		poolOpts = append(poolOpts, worker.WithMetricsRegistry[int](e.registry))
	}

	pool, err := worker.NewPool(e.mon, e.cfg.Producers, e.cfg.Consumers, poolOpts...)
	if err != nil {
		return err
	}
	e.pool = pool

	e.state = StateInitialized
	e.setStatusMetric()
	e.logger.Info("engine initialized",
		"run_id", e.runID,
		"capacity", e.cfg.Capacity,
		"producers", e.cfg.Producers,
		"consumers", e.cfg.Consumers,
		"target", e.cfg.ProduceTarget,
		"metrics", e.cfg.Metrics.Enabled)
	return nil
}

// Start executes the run: it launches the metrics server when enabled,
// drives the worker pool to completion and verifies the completion
// invariants. Start blocks until every worker has terminated.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateInitialized {
		e.mu.Unlock()
		return errors.WrapLifecycle(errors.ErrNotInitialized,
			"Engine", "Start", "start run")
	}
	e.state = StateStarted
	e.setStatusMetric()
	server := e.server
	e.mu.Unlock()

	if server != nil {
		go func() {
			if err := server.Start(); err != nil {
				e.logger.Error("metrics server failed", "error", err)
			}
		}()
		e.logger.Info("metrics server listening", "address", server.Address())
	}

	start := time.Now()
	if err := e.pool.Run(ctx); err != nil {
		e.fail(err)
		return err
	}
	duration := time.Since(start)

	if err := e.verify(); err != nil {
		e.fail(err)
		return err
	}

	e.mu.Lock()
	e.result = &Result{
		RunID:    e.runID,
		Produced: e.mon.Produced(),
		Consumed: e.mon.Consumed(),
		Occupied: e.mon.Occupied(),
		Duration: duration,
		Stats:    e.mon.Stats().Summary(),
	}
	e.mu.Unlock()

	if e.registry != nil {
		e.registry.CoreMetrics().RunDuration.Observe(duration.Seconds())
	}

	e.logger.Info("run complete",
		"run_id", e.runID,
		"produced", e.mon.Produced(),
		"consumed", e.mon.Consumed(),
		"duration", duration)
	return nil
}

// Stop shuts down the metrics server within the timeout and marks the
// engine stopped. It is a no-op error to stop an engine that never
// started.
func (e *Engine) Stop(timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateCreated, StateInitialized:
		return errors.WrapLifecycle(errors.ErrNotStarted,
			"Engine", "Stop", "stop engine")
	case StateStopped:
		return errors.WrapLifecycle(errors.ErrAlreadyStopped,
			"Engine", "Stop", "stop engine")
	}

	if e.server != nil {
		done := make(chan error, 1)
		go func() {
			done <- e.server.Stop()
		}()
		select {
		case err := <-done:
			if err != nil {
				return err
			}
		case <-time.After(timeout):
			return errors.WrapFatal(
				fmt.Errorf("metrics server did not stop within %s", timeout),
				"Engine", "Stop", "stop metrics server")
		}
	}

	if e.state != StateFailed {
		e.state = StateStopped
		e.setStatusMetric()
	}
	e.logger.Info("engine stopped", "run_id", e.runID)
	return nil
}

// verify checks the completion invariants: both counters match the
// target and the buffer has drained.
func (e *Engine) verify() error {
	produced := e.mon.Produced()
	consumed := e.mon.Consumed()
	occupied := e.mon.Occupied()

	if produced != e.cfg.ProduceTarget || consumed != e.cfg.ConsumeTarget {
		return errors.WrapFatal(
			fmt.Errorf("%w: produced=%d consumed=%d target=%d",
				errors.ErrConservationViolated, produced, consumed, e.cfg.ProduceTarget),
			"Engine", "Start", "verify completion")
	}
	if occupied != 0 {
		return errors.WrapFatal(
			fmt.Errorf("%w: %d items remain", errors.ErrBufferNotDrained, occupied),
			"Engine", "Start", "verify completion")
	}
	return nil
}

// fail records a fatal outcome in state and metrics.
func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.state = StateFailed
	e.setStatusMetric()
	e.mu.Unlock()

	if e.registry != nil {
		e.registry.CoreMetrics().ErrorsTotal.
			WithLabelValues("engine", errors.Classify(err).String()).Inc()
	}
	e.logger.Error("run failed", "run_id", e.runID, "error", err)
}

func (e *Engine) setStatusMetric() {
	if e.registry != nil {
		e.registry.CoreMetrics().EngineStatus.Set(float64(e.state))
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RunID returns the unique identifier assigned to this engine's run.
func (e *Engine) RunID() string {
	return e.runID
}

// Result returns the summary of a completed run, or nil before
// completion.
func (e *Engine) Result() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Monitor exposes the underlying monitor for inspection.
func (e *Engine) Monitor() *monitor.Monitor[int] {
	return e.mon
}
