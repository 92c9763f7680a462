// Package database opens the relational store, applies migrations and runs
// units of work in transactions.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "modernc.org/sqlite"             // registers "sqlite"

	"uims/internal/platform/config"
)

// Open connects using cfg and waits, with exponential backoff bounded by
// cfg.ConnectTimeout, until the database answers a ping.
func Open(ctx context.Context, cfg config.Database, logger *slog.Logger) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	configurePool(db, dialect, cfg)

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			logger.WarnContext(ctx, "database not ready",
				"driver", cfg.Driver,
				"attempt", attempt,
				"error", err,
			)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(cfg.ConnectTimeout),
	)
	if err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	logger.InfoContext(ctx, "database connected", "driver", cfg.Driver, "dialect", dialect)
	return db, dialect, nil
}

func configurePool(db *sql.DB, dialect Dialect, cfg config.Database) {
	if dialect == SQLite {
		// One connection: an in-memory database exists per connection, and
		// SQLite serializes writers anyway.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
}
