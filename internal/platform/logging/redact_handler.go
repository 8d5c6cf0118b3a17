package logging

import (
	"context"
	"log/slog"
)

// redactingHandler applies a ReplaceAttr function before delegating.
// It also lifts trace records to debug, the lowest level charm renders.
type redactingHandler struct {
	next    slog.Handler
	replace func(groups []string, a slog.Attr) slog.Attr
	level   slog.Level
	groups  []string
}

func newRedactingHandler(next slog.Handler, replace func([]string, slog.Attr) slog.Attr, level slog.Level) *redactingHandler {
	return &redactingHandler{next: next, replace: replace, level: level}
}

func (h *redactingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *redactingHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	level := r.Level
	if level < slog.LevelDebug {
		level = slog.LevelDebug
	}

	out := slog.NewRecord(r.Time, level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.replace(h.groups, a)
	}

	clone := *h
	clone.next = h.next.WithAttrs(redacted)

	return &clone
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.next = h.next.WithGroup(name)
	clone.groups = append(append([]string(nil), h.groups...), name)

	return &clone
}
