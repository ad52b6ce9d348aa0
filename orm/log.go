package orm

import (
	"context"
	"log/slog"
)

// SlogLogger is a Logger that writes each query as a structured record.
type SlogLogger struct {
	l     *slog.Logger
	level slog.Level
}

// NewSlogLogger returns a Logger that emits queries to l at debug level.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l, level: slog.LevelDebug}
}

// WithLevel returns a copy of the logger that emits at level.
func (s *SlogLogger) WithLevel(level slog.Level) *SlogLogger {
	return &SlogLogger{l: s.l, level: level}
}

func (s *SlogLogger) Log(ctx context.Context, query string, args ...any) {
	s.l.Log(ctx, s.level, "orm query", slog.String("sql", query), slog.Any("args", args))
}

var _ Logger = (*SlogLogger)(nil)
