// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug for the most verbose per-frame
// diagnostics (pair counts, draw batching, voice lifecycle).
const LevelTrace = slog.Level(-8)

// LevelFatal sits above slog.LevelError for unrecoverable startup and
// shutdown failures.
const LevelFatal = slog.Level(12)

// lineHandler formats records as one line: "[LEVEL]: message key=value ...",
// matching the persisted log format every subsystem writes through.
type lineHandler struct {
	w     io.Writer
	attrs []slog.Attr
}

// NewLogger returns an slog.Logger that writes append-only, one record
// per line, prefixed by the record's level in brackets.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(&lineHandler{w: w})
}

func levelTag(l slog.Level) string {
	switch {
	case l >= LevelFatal:
		return "FATAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	case l >= slog.LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

func (h *lineHandler) Enabled(ctx context.Context, level slog.Level) bool { return true }

func (h *lineHandler) Handle(ctx context.Context, r slog.Record) error {
	line := fmt.Sprintf("[%s]: %s", levelTag(r.Level), r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})
	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &lineHandler{w: h.w, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	return h // groups are flattened; nobody in this codebase nests them.
}

// Fatalf logs at the level above Error (the reserved FATAL tag) and
// returns the formatted message so callers can also wrap it as an error.
func Fatalf(log *slog.Logger, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	log.Log(context.Background(), LevelFatal, msg)
	return msg
}
