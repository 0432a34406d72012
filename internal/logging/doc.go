// Package logging assembles structured slog loggers and formatting helpers
// used across triagem.
//
// It owns the console and JSON handlers, the per-run JSON log file, and
// retention pruning for old run logs. Context helpers tag log lines with
// the run ID, stage, and video so a single run can be followed end to end.
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
