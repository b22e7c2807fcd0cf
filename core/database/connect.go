package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
	"log/slog"
)

// ErrStorageUnavailable indicates the backing file cannot be created,
// opened, or written. It is fatal: the process exits and relies on the
// container restart policy for recovery.
var ErrStorageUnavailable = errors.New("storage unavailable")

// DSN builds the go-sqlite3 connection string for the configured file.
func DSN(cfg Config) string {
	return fmt.Sprintf(
		"file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeoutMS,
	)
}

// Connect opens the database file, creating it and its directory if absent,
// and verifies connectivity. Opening an existing file reuses its contents.
func Connect(cfg Config) (*sqlx.DB, error) {
	cfg.Normalize()

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.DB.Error("data dir create failed",
				slog.String("event", "db.open"),
				slog.String("db_path", cfg.Path),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%w: create data dir: %v", ErrStorageUnavailable, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, "sqlite3", DSN(cfg))
	took := time.Since(start)
	if err != nil {
		logger.DB.Error("db open failed",
			slog.String("event", "db.open"),
			slog.String("driver", "sqlite3"),
			slog.String("db_path", cfg.Path),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, cfg.Path, err)
	}

	// A single writer avoids SQLITE_BUSY churn; reads share the connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	logger.DB.Info("db opened",
		slog.String("event", "db.open"),
		slog.String("driver", "sqlite3"),
		slog.String("db_path", cfg.Path),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return db, nil
}
