package config

import (
	"encoding/json"
	"fmt"
	"os"

	cerrors "github.com/c360/prodcon/errors"
)

// Config holds the full runtime configuration. The zero value is not
// usable; start from Default and override, or load a JSON file.
type Config struct {
	// Capacity is the number of buffer slots.
	Capacity int `json:"capacity"`

	// Sentinel is the value rendered for unoccupied slots in trace
	// output. It never enters the buffer.
	Sentinel int `json:"sentinel"`

	// ProduceTarget and ConsumeTarget are the global operation counts.
	// They must be equal, otherwise the run cannot drain the buffer.
	ProduceTarget int `json:"produce_target"`
	ConsumeTarget int `json:"consume_target"`

	// Producers and Consumers are the worker counts per role.
	Producers int `json:"producers"`
	Consumers int `json:"consumers"`

	// Seed selects a deterministic value generator when non-zero.
	Seed uint64 `json:"seed,omitempty"`

	// Trace enables the per-operation console trace.
	Trace bool `json:"trace"`

	Metrics MetricsConfig `json:"metrics"`
	Log     LogConfig     `json:"log"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port"`
	Path    string `json:"path"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
	// Format is text or json.
	Format string `json:"format"`
}

// Default returns the canonical configuration: a 10-slot buffer, 100
// operations per role, tracing on and metrics off.
func Default() *Config {
	return &Config{
		Capacity:      10,
		Sentinel:      0,
		ProduceTarget: 100,
		ConsumeTarget: 100,
		Producers:     1,
		Consumers:     1,
		Trace:         true,
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a JSON configuration file and merges it over Default.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.WrapInit(
				fmt.Errorf("%w: %s", cerrors.ErrConfigNotFound, path),
				"Config", "Load", "read file")
		}
		return nil, cerrors.WrapInit(err, "Config", "Load", "read file")
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, cerrors.WrapInit(
			fmt.Errorf("%w: %v", cerrors.ErrInvalidConfig, err),
			"Config", "Load", "parse JSON")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural soundness. It reports the first problem
// found rather than collecting all of them.
func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return cerrors.WrapInit(
			fmt.Errorf("%w: "+format, append([]any{cerrors.ErrInvalidConfig}, args...)...),
			"Config", "Validate", "check fields")
	}

	if c.Capacity <= 0 {
		return fail("capacity must be positive, got %d", c.Capacity)
	}
	if c.ProduceTarget < 0 {
		return fail("produce target must be non-negative, got %d", c.ProduceTarget)
	}
	if c.ConsumeTarget < 0 {
		return fail("consume target must be non-negative, got %d", c.ConsumeTarget)
	}
	if c.ProduceTarget != c.ConsumeTarget {
		return fail("produce target %d and consume target %d must be equal",
			c.ProduceTarget, c.ConsumeTarget)
	}
	if c.Producers <= 0 {
		return fail("producers must be positive, got %d", c.Producers)
	}
	if c.Consumers <= 0 {
		return fail("consumers must be positive, got %d", c.Consumers)
	}
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return fail("metrics port must be in 1..65535, got %d", c.Metrics.Port)
		}
		if c.Metrics.Path == "" {
			return fail("metrics path must not be empty")
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fail("log level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fail("log format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Clone returns a deep copy via a JSON round trip.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	var out Config
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return &out
}
