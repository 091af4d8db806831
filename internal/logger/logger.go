// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and context
// helpers used by the zk-vault server and CLI.
//
// The Logger type embeds zerolog.Logger so all zerolog methods (Debug, Info,
// Warn, Error, ...) are available on *Logger. Request-scoped loggers are
// obtained with FromContext or FromRequest.
//
// Secrets, keys, verifiers and vault plaintext are never passed to a logger.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultClientLogFile is created next to the CLI executable when no path is
// configured.
const DefaultClientLogFile = "zk-vault.log"

// Logger embeds zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// New builds a JSON logger writing to w with a "role" field, a timestamp and
// the calling function name under "func".
func New(w io.Writer, role string, level zerolog.Level) *Logger {
	l := zerolog.New(w).Level(level).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// NewLogger returns the server logger: JSON on stdout at the given level
// ("debug" when empty or unknown).
func NewLogger(role, level string) *Logger {
	return New(os.Stdout, role, ParseLevel(level))
}

// NewClientLogger returns the CLI logger. Terminal output belongs to the
// user, so entries go to path (DefaultClientLogFile next to the executable
// when empty). If the file cannot be opened it falls back to stderr at warn
// level.
func NewClientLogger(role, path, level string) *Logger {
	if path == "" {
		execPath, err := os.Executable()
		if err != nil {
			execPath = "."
		}
		path = filepath.Join(filepath.Dir(execPath), DefaultClientLogFile)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return New(os.Stderr, role, zerolog.WarnLevel)
	}

	return New(file, role, ParseLevel(level))
}

// ParseLevel converts a level name to a zerolog level. Unknown or empty
// names mean debug.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.DebugLevel
	}
	return parsed
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithContext attaches l to ctx so FromContext can find it.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromRequest returns the logger stored in r's context by the logging
// middleware.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx. When none is stored zerolog
// falls back to its default logger (or a disabled one), never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
