// Package logging assembles the structured slog loggers used by chartmeta.
//
// It owns the console and JSON handlers, level parsing and output routing.
// Logs default to stderr so stdout stays reserved for the chart table or JSON
// rows. Each invocation is tagged with a run_id carried on the context, and a
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
