// Package testutil provides shared test helpers: a recording observer
// for worker events, deterministic value generators and a discard
// logger. Test-only; never import from production code.
package testutil
