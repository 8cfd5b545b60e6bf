// Package main implements the prodcon command, a bounded-buffer
// producer/consumer runner. It spawns the requested producer and
// consumer workers over a shared fixed-capacity buffer, runs both sides
// to their targets and prints a per-operation trace.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/prodcon/engine"
	"github.com/c360/prodcon/errors"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "prodcon"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		if errors.IsUsage(err) {
			_, _ = fmt.Fprintf(os.Stderr, "%s\nRun '%s --help' for usage.\n", err, appName)
		} else {
			slog.Error("run failed", "error", err, "class", errors.Classify(err).String())
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cli, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	if cli.ShowHelp {
		return nil
	}
	if cli.ShowVersion {
		fmt.Printf("%s version %s (build %s)\n", appName, Version, BuildTime)
		return nil
	}

	cfg, err := buildConfig(cli)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	e, err := engine.New(cfg, engine.WithLogger(logger), engine.WithOutput(os.Stdout))
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}

	// The run itself is not cancellable: the protocol drives both sides
	// to their targets. Signals still get a clean engine shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := e.Start(ctx); err != nil {
		_ = e.Stop(5 * time.Second)
		return err
	}

	res := e.Result()
	logger.Info("summary",
		"run_id", res.RunID,
		"produced", res.Produced,
		"consumed", res.Consumed,
		"max_occupied", res.Stats.MaxOccupied,
		"producer_blocks", res.Stats.ProducerBlocks,
		"consumer_blocks", res.Stats.ConsumerBlocks,
		"duration", res.Duration)

	return e.Stop(5 * time.Second)
}
