// Package logging holds slog helpers shared by the uploader and the build package.
package logging

import (
	"context"
	"log/slog"
)

// WithCompilation tags every record with the build pass it belongs to.
func WithCompilation(logger *slog.Logger, id string) *slog.Logger {
	group := slog.Group("compilation", "id", id)
	return logger.With(group)
}

// WithBackend tags every record with the storage backend and bucket.
func WithBackend(logger *slog.Logger, backend, bucket string) *slog.Logger {
	group := slog.Group("remote", "backend", backend, "bucket", bucket)
	return logger.With(group)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Or returns logger, or a discarding logger when it is nil.
func Or(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
