// Package testutil provides loggers and migrated stores for tests.
package testutil

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/internal/store"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// SQLiteConfig returns a database config pointing at a fresh file in a
// temporary directory.
func SQLiteConfig(t testing.TB) config.Database {
	t.Helper()
	return config.Database{
		Dialect:      "sqlite",
		DSN:          filepath.Join(t.TempDir(), "pressroom.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
		Debug:        true,
	}
}

// NewStore opens a migrated SQLite store that is closed when the test ends.
func NewStore(t testing.TB) *store.Store {
	t.Helper()

	s, err := store.Open(t.Context(), SQLiteConfig(t), NewTestLogger(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(t.Context()); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	return s
}
