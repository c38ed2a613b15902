// Package logger provides structured logging for the application using the
// standard library log/slog package. Loggers are JSON-formatted, leveled from
// configuration, and can be carried through a request via its context.
package logger
