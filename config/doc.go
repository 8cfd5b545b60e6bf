// Package config defines the runtime configuration for a bounded-buffer
// run.
//
// Configuration is plain JSON. Default returns the canonical settings,
// Load merges a file over them, and Validate enforces the structural
// rules the monitor and pool rely on (positive capacity and worker
// counts, equal non-negative targets). The command layer maps flags and
// environment variables onto the same struct, so every entry point goes
// through one validation path.
package config
