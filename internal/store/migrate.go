package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// Migrate creates the authors, magazines and articles tables if they do
// not exist yet. Running it again is a no-op.
func (s *Store) Migrate(ctx context.Context) error {
	p, err := s.provider()
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration))
	}
	return nil
}

// MigrationVersion returns the latest applied migration version.
func (s *Store) MigrationVersion(ctx context.Context) (int64, error) {
	p, err := s.provider()
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return v, nil
}

func (s *Store) provider() (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, path.Join("migrations", s.dialect.Name()))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s migrations: %w", s.dialect.Name(), err)
	}

	p, err := goose.NewProvider(gooseDialect(s.dialect.Name()), s.raw, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return p, nil
}

func gooseDialect(name string) goose.Dialect {
	switch name {
	case "mysql":
		return goose.DialectMySQL
	case "postgres":
		return goose.DialectPostgres
	default:
		return goose.DialectSQLite3
	}
}
