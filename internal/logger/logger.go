// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the relay and the sync client.
//
// Every entry is JSON with a "role" field, a timestamp and a "func" field
// naming the calling function. Request and query scoped loggers travel in
// the context and are read back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// clientLogFile is the name of the client log inside its log directory.
const clientLogFile = "sync-client.log"

type Logger struct {
	zerolog.Logger
}

var setupGlobals sync.Once

func newLogger(out io.Writer, role string) *Logger {
	setupGlobals.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger writes to stdout. The relay logs this way.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger appends to dir/sync-client.log so stdout stays free for
// command output. An empty dir means the directory of the executable; if
// the file cannot be opened entries go to stderr.
func NewClientLogger(role, dir string) *Logger {
	if dir == "" {
		execPath, _ := os.Executable()
		dir = filepath.Dir(execPath)
	}

	var out io.Writer = os.Stderr
	if err := os.MkdirAll(dir, 0o755); err == nil {
		f, err := os.OpenFile(filepath.Join(dir, clientLogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			out = f
		}
	}

	return newLogger(out, role)
}

// Nop discards everything. Tests use it.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be given more fields without
// touching the receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached with zerolog's WithContext, or
// zerolog's default logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// WithTraceID returns a child of l carrying trace_id and a context holding
// that child.
func (l *Logger) WithTraceID(ctx context.Context, traceID string) (context.Context, *Logger) {
	child := &Logger{l.With().Str("trace_id", traceID).Logger()}
	return child.WithContext(ctx), child
}
