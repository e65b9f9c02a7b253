// Package logging assembles structured slog loggers and formatting helpers
// used across videoforge.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so pipeline code tags log lines the
// same way everywhere. A no-op logger is provided for tests and wiring code
// that cannot fail.
package logging
