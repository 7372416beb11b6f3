// Package logger builds the slog logger used by every command and decorates
// records with invocation details carried in the context.
package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey int

const (
	runIDKey ctxKey = iota
	commandKey
)

// ContextHandler is a wrapper around slog.Handler that adds context information.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

// Handle adds the run id and command name, when present, and forwards the record.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID := RunID(ctx); runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}
	if cmd, ok := ctx.Value(commandKey).(string); ok && cmd != "" {
		r.AddAttrs(slog.String("command", cmd))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes added.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

// WithGroup returns a new ContextHandler with the given group added.
func (h *ContextHandler) WithGroup(group string) slog.Handler {
	return &ContextHandler{
		Handler: h.Handler.WithGroup(group),
	}
}

// WithRunID stores a fresh random run id in the context, unless one is already set.
func WithRunID(ctx context.Context) context.Context {
	if RunID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, uuid.NewString())
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// WithCommand stores the name of the running command in the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// NewLogger creates a new slog.Logger writing to w.
// format is "json" or "text"; anything else falls back to text.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	var logHandler slog.Handler
	if format == "json" {
		logHandler = slog.NewJSONHandler(w, loggerOpts)
	} else {
		logHandler = slog.NewTextHandler(w, loggerOpts)
	}
	return slog.New(NewContextHandler(logHandler))
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
