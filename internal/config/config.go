// Package config loads pressroom settings from defaults, an optional YAML
// file and PRESSROOM_ environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mickamy/pressroom/orm"
)

// FileName is the config file looked up in the working directory.
const FileName = "pressroom.yaml"

// EnvPrefix prefixes every environment override. Nested keys are
// separated by a double underscore: PRESSROOM_DATABASE__DSN.
const EnvPrefix = "PRESSROOM_"

// Config is the root configuration.
type Config struct {
	Database Database `koanf:"database"`
	Log      Log      `koanf:"log"`
}

// Database configures the backing store.
type Database struct {
	Dialect         string        `koanf:"dialect"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	PingTimeout     time.Duration `koanf:"ping_timeout"`
	// Debug logs every SQL statement at debug level.
	Debug bool `koanf:"debug"`
}

// Log configures the process logger.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"database.dialect":           "sqlite",
		"database.dsn":               "pressroom.db",
		"database.max_open_conns":    10,
		"database.max_idle_conns":    5,
		"database.conn_max_lifetime": "1h",
		"database.ping_timeout":      "5s",
		"database.debug":             false,
		"log.level":                  "info",
		"log.format":                 "text",
	}
}

// Validate reports configuration that cannot be used to open a store.
func (c *Config) Validate() error {
	var errs []error
	if _, err := orm.DialectByName(c.Database.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("database.dialect: %w", err))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn: must not be empty"))
	}
	if c.Database.MaxOpenConns < 0 {
		errs = append(errs, errors.New("database.max_open_conns: must not be negative"))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
