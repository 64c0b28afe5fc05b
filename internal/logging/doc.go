// Package logging assembles the structured slog loggers used across
// backdate commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and derives per-run log file locations from configuration so
// every run leaves a reviewable trail under the configured log directory.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail, plus retention helpers that prune old run logs.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the tool.
package logging
