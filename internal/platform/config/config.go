// Package config loads process configuration. Defaults come from struct tags;
// an optional config file and UIMS_* environment variables override them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. UIMS_DATABASE_DSN.
const EnvPrefix = "UIMS"

// Config is the root configuration.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Log      Log      `mapstructure:"log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr" default:":8080"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"10s"`
}

// Database selects the driver and connection. Driver is one of "postgres"
// (lib/pq), "pgx" (pgx stdlib) or "sqlite" (embedded).
type Database struct {
	Driver         string        `mapstructure:"driver" default:"postgres"`
	DSN            string        `mapstructure:"dsn" default:"postgres://localhost:5432/uims?sslmode=disable"`
	MaxOpenConns   int           `mapstructure:"max_open_conns" default:"10"`
	TxTimeout      time.Duration `mapstructure:"tx_timeout" default:"5s"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" default:"30s"`
	AutoMigrate    bool          `mapstructure:"auto_migrate" default:"true"`
}

// Log configures the slog handler. Format is "json" or "text".
type Log struct {
	Level  string `mapstructure:"level" default:"info"`
	Format string `mapstructure:"format" default:"json"`
}

// keys lists every setting so environment variables bind even when no
// config file mentions them.
var keys = []string{
	"server.addr",
	"server.shutdown_timeout",
	"database.driver",
	"database.dsn",
	"database.max_open_conns",
	"database.tx_timeout",
	"database.connect_timeout",
	"database.auto_migrate",
	"log.level",
	"log.format",
}

// Load builds a Config from defaults, then the file set on v (if any), then
// the environment.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply config defaults: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "pgx", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres, pgx or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.TxTimeout <= 0 {
		return fmt.Errorf("database.tx_timeout must be positive")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
