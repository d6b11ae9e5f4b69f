// Package logging assembles the structured slog loggers used across
// ticketsweep components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so per-ticket code can
// automatically tag log lines with the cycle correlation ID and ticket
// number. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
