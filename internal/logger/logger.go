// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// photosync application.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain run-scoped
// loggers via ForRun and FromContext.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label writing JSON lines
// to os.Stdout.
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     instead of the default file:line format.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewFileLogger constructs a *Logger that appends JSON lines to the file at
// path. Parent directories are created as needed. When path is empty the
// logger writes to os.Stdout; when the file cannot be opened it does too,
// after logging a warning. The returned value is never nil.
//
// The second return value closes the underlying file; it is a no-op for the
// stdout fallback.
func NewFileLogger(role, path string) (*Logger, func() error) {
	return newFileLogger(role, path, os.Stdout)
}

func newFileLogger(role, path string, fallback io.Writer) (*Logger, func() error) {
	noop := func() error { return nil }
	if path == "" {
		return newLogger(fallback, role), noop
	}

	logFile, err := openLogFile(path)
	if err != nil {
		l := newLogger(fallback, role)
		l.Warn().Err(err).Str("path", path).Msg("cannot open log file, logging to stdout")
		return l, noop
	}

	return newLogger(logFile, role), logFile.Close
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func newLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// ForRun returns a child logger tagged with the given run identifier.
func (l *Logger) ForRun(runID string) *Logger {
	return &Logger{l.With().Str("run_id", runID).Logger()}
}

// WithContext attaches the logger to ctx so that FromContext can retrieve it
// further down the call chain.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
