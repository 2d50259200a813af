package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
	"go.uber.org/zap"

	"restaurante/internal/config"
)

const pingTimeout = 5 * time.Second

// NewConnection opens the pool for the configured driver and waits until the
// database answers a ping, retrying up to cfg.ConnectRetries times.
func NewConnection(ctx context.Context, dialect Dialect, cfg config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// SQLite allows one writer at a time.
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	attempts := cfg.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pctx)
		cancel()
		if err == nil {
			return db, nil
		}

		if attempt >= attempts {
			break
		}

		logger.Warn("database not reachable, retrying",
			zap.String("driver", string(dialect)),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Error(err),
		)

		select {
		case <-time.After(cfg.ConnectRetryDelay):
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("pinging database: %w", ctx.Err())
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("pinging database after %d attempts: %w", attempts, err)
}
