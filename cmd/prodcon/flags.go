package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/c360/prodcon/config"
	"github.com/c360/prodcon/errors"
)

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigPath  string
	Capacity    int
	Target      int
	Seed        uint64
	Trace       bool
	Metrics     bool
	MetricsPort int
	MetricsPath string
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool

	// Positional arguments.
	Producers int
	Consumers int

	// Flags the user set explicitly, by name. Explicit flags override
	// values loaded from a config file.
	set map[string]bool
}

// parseArgs parses flags and the two required positional worker counts
// from args (without the program name). Output for usage text goes to w.
func parseArgs(args []string, w io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(w)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("PRODCON_CONFIG", ""),
		"Path to JSON configuration file, optional (env: PRODCON_CONFIG)")

	fs.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("PRODCON_CAPACITY", 10),
		"Buffer capacity in slots (env: PRODCON_CAPACITY)")

	fs.IntVar(&cfg.Target, "target",
		getEnvInt("PRODCON_TARGET", 100),
		"Items to produce and consume (env: PRODCON_TARGET)")

	fs.Uint64Var(&cfg.Seed, "seed",
		getEnvUint64("PRODCON_SEED", 0),
		"Deterministic generator seed, 0 for random (env: PRODCON_SEED)")

	fs.BoolVar(&cfg.Trace, "trace",
		getEnvBool("PRODCON_TRACE", true),
		"Print a trace line and buffer dump per operation (env: PRODCON_TRACE)")

	fs.BoolVar(&cfg.Metrics, "metrics",
		getEnvBool("PRODCON_METRICS", false),
		"Expose Prometheus metrics over HTTP (env: PRODCON_METRICS)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("PRODCON_METRICS_PORT", 9090),
		"Metrics server port (env: PRODCON_METRICS_PORT)")

	fs.StringVar(&cfg.MetricsPath, "metrics-path",
		getEnv("PRODCON_METRICS_PATH", "/metrics"),
		"Metrics endpoint path (env: PRODCON_METRICS_PATH)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PRODCON_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: PRODCON_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("PRODCON_LOG_FORMAT", "text"),
		"Log format: text, json (env: PRODCON_LOG_FORMAT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")

	fs.Usage = func() {
		printDetailedHelp(fs, w)
	}

	if err := fs.Parse(args); err != nil {
		return nil, errors.WrapUsage(err, "CLI", "parseArgs", "parse flags")
	}

	cfg.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})

	if cfg.ShowHelp {
		fs.Usage()
		return cfg, nil
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	positional := fs.Args()
	if len(positional) != 2 {
		return nil, errors.WrapUsage(
			fmt.Errorf("%w: expected <producers> <consumers>, got %d arguments",
				errors.ErrMissingArguments, len(positional)),
			"CLI", "parseArgs", "read positional arguments")
	}

	var err error
	if cfg.Producers, err = parseWorkerCount("producers", positional[0]); err != nil {
		return nil, err
	}
	if cfg.Consumers, err = parseWorkerCount("consumers", positional[1]); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseWorkerCount parses one positional worker count, which must be a
// positive integer.
func parseWorkerCount(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.WrapUsage(
			fmt.Errorf("%w: %s=%q", errors.ErrInvalidWorkerCount, name, raw),
			"CLI", "parseArgs", "parse worker count")
	}
	return n, nil
}

// buildConfig turns CLI input into a validated runtime configuration.
// Precedence, lowest to highest: defaults, config file, explicit flags,
// positional arguments.
func buildConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.Default()
	if cli.ConfigPath != "" {
		loaded, err := config.Load(cli.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.set["capacity"] {
		cfg.Capacity = cli.Capacity
	}
	if cli.set["target"] {
		cfg.ProduceTarget = cli.Target
		cfg.ConsumeTarget = cli.Target
	}
	if cli.set["seed"] {
		cfg.Seed = cli.Seed
	}
	if cli.set["trace"] {
		cfg.Trace = cli.Trace
	}
	if cli.set["metrics"] {
		cfg.Metrics.Enabled = cli.Metrics
	}
	if cli.set["metrics-port"] {
		cfg.Metrics.Port = cli.MetricsPort
	}
	if cli.set["metrics-path"] {
		cfg.Metrics.Path = cli.MetricsPath
	}
	if cli.set["log-level"] {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.set["log-format"] {
		cfg.Log.Format = cli.LogFormat
	}

	cfg.Producers = cli.Producers
	cfg.Consumers = cli.Consumers

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printDetailedHelp(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - bounded-buffer producer/consumer runner

Usage: %s [options] <producers> <consumers>

Arguments:
  producers    Number of producer workers (positive integer)
  consumers    Number of consumer workers (positive integer)

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # One producer, one consumer, default 10-slot buffer
  %s 1 1

  # Three producers, two consumers, deterministic values
  %s --seed=42 3 2

  # Expose Prometheus metrics during the run
  %s --metrics --metrics-port=9090 2 2

Version: %s
`, appName, appName, appName, Version)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
