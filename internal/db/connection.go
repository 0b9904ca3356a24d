// Package db provides database connection and management utilities.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/account-api/internal/config"
	"github.com/jmoiron/sqlx"

	// Import postgres driver for registration with database/sql)
	_ "github.com/lib/pq"
)

// DB wraps the database connection pool
type DB struct {
	*sqlx.DB
	logger       *slog.Logger
	echo         bool
	queryTimeout time.Duration
}

// Connect establishes a connection to the database. It is called once at
// startup; Close is the matching teardown.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"schema", cfg.Schema,
	)

	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns())
	db.SetMaxIdleConns(cfg.PoolSize)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to database",
		"pool_size", cfg.PoolSize,
		"max_overflow", cfg.MaxOverflow,
		"max_open_conns", cfg.MaxOpenConns(),
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return &DB{
		DB:           db,
		logger:       logger,
		echo:         cfg.Echo,
		queryTimeout: cfg.QueryTimeout,
	}, nil
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// Querier returns the pool as an sqlx.ExtContext, echoing statements when
// configured to.
func (db *DB) Querier() sqlx.ExtContext {
	if db.echo {
		return &echoQuerier{ExtContext: db.DB, logger: db.logger}
	}
	return db.DB
}
