// Package logging configures slog for the CLI and libraries: a text or
// JSON handler, context-scoped attributes, and optional rotating file
// output.
package logging

import (
	"context"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// Logger builds a slog.Logger writing to w at the given level. Pass
// json=true for machine-readable output.
func Logger(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ctxHandler{Handler: h})
}

// FileLogger is Logger backed by a size-rotated file.
func FileLogger(path string, json bool, level slog.Level) *slog.Logger {
	return Logger(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}, json, level)
}

// AppendCtx attaches attrs to the context; every record logged with that
// context carries them.
func AppendCtx(ctx context.Context, attrs ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		attrs = append(existing[:len(existing):len(existing)], attrs...)
	}
	return context.WithValue(ctx, ctxKey{}, attrs)
}

// ctxHandler injects AppendCtx attributes into each record.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{Handler: h.Handler.WithGroup(name)}
}
