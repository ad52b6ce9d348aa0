// Package store owns the connection to the backing store. Open is the
// connection provider and Migrate is the schema bootstrap; everything else
// receives the *orm.DB that Open returns.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
)

const defaultPingTimeout = 5 * time.Second

// Store is an open handle to the backing store.
type Store struct {
	raw     *sql.DB
	db      *orm.DB
	dialect orm.Dialect
	logger  *slog.Logger
}

// Open connects to the database described by cfg and verifies it with a
// ping. The caller owns the Store and must Close it.
func Open(ctx context.Context, cfg config.Database, logger *slog.Logger) (*Store, error) {
	d, err := orm.DialectByName(cfg.Dialect)
	if err != nil {
		return nil, err //nolint:wrapcheck // already prefixed
	}

	dsn := cfg.DSN
	if d.Name() == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	raw, err := sql.Open(driverName(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Name(), err)
	}

	raw.SetMaxOpenConns(cfg.MaxOpenConns)
	raw.SetMaxIdleConns(cfg.MaxIdleConns)
	raw.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if d.Name() == "sqlite" && strings.Contains(cfg.DSN, ":memory:") {
		// Every connection to :memory: sees its own empty database, so the
		// single connection must never be closed while the store is open.
		raw.SetMaxOpenConns(1)
		raw.SetMaxIdleConns(1)
		raw.SetConnMaxLifetime(0)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := raw.PingContext(pingCtx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d.Name(), err)
	}

	db := orm.New(raw, d)
	if cfg.Debug {
		db = db.Debug(orm.NewSlogLogger(logger))
	}

	logger.Info("store opened",
		slog.String("dialect", d.Name()),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Bool("debug", cfg.Debug))

	return &Store{raw: raw, db: db, dialect: d, logger: logger}, nil
}

// DB returns the handle passed to repositories.
func (s *Store) DB() *orm.DB { return s.db }

// Dialect returns the store's SQL dialect.
func (s *Store) Dialect() orm.Dialect { return s.dialect }

// Close releases every pooled connection.
func (s *Store) Close() error {
	if err := s.raw.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	s.logger.Info("store closed")
	return nil
}

// Reset deletes every row from the three tables, articles first so that
// foreign keys are never violated.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{model.ArticlesTable, model.AuthorsTable, model.MagazinesTable} {
		stmt := "DELETE FROM " + s.dialect.QuoteIdent(table)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func driverName(d orm.Dialect) string {
	switch d.Name() {
	case "postgres":
		return "pgx"
	default:
		return d.Name()
	}
}

// sqliteDSN enables foreign keys and a busy timeout on every connection,
// and WAL for file databases. DSNs that already set pragmas are kept.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}
	if !strings.Contains(dsn, ":memory:") {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}
