// Package log provides a small structured-logging wrapper around
// log/slog, matching the logging interface used elsewhere in this
// module's ambient stack.
package log

import "log/slog"

// Logger logs structured messages at standard severity levels.
type Logger interface {
	// With returns a Logger that includes the given attributes in
	// every subsequent output operation.
	With(ctx ...any) Logger

	// Debug logs a message at the debug level with context key/value
	// pairs.
	Debug(msg string, ctx ...any)

	// Info logs a message at the info level with context key/value
	// pairs.
	Info(msg string, ctx ...any)

	// Warn logs a message at the warn level with context key/value
	// pairs.
	Warn(msg string, ctx ...any)

	// Error logs a message at the error level with context key/value
	// pairs.
	Error(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

// New returns a Logger backed by the given slog.Handler.
func New(handler slog.Handler) Logger {
	return &logger{inner: slog.New(handler)}
}

// Noop returns a Logger that discards everything. Useful as a default
// when no logger is configured.
func Noop() Logger {
	return New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (l *logger) With(ctx ...any) Logger {
	return &logger{inner: l.inner.With(ctx...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.inner.Debug(msg, ctx...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.inner.Info(msg, ctx...)
}

func (l *logger) Warn(msg string, ctx ...any) {
	l.inner.Warn(msg, ctx...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.inner.Error(msg, ctx...)
}
