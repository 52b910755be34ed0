// Package logging assembles structured slog loggers and formatting helpers used
// across mkvnorm.
//
// It owns the console and JSON handlers, routes output to the terminal and an
// optional size-rotated log file, and exposes context helpers so per-file work
// is tagged with the batch run id and the file being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
