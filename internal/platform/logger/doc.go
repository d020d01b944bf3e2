// Package logger provides structured logging functionality for the application.
//
// It builds a JSON log/slog logger from configuration, carries request-scoped
// loggers through context.Context, and offers capture helpers for tests. It
// never touches the process-wide slog default.
package logger
