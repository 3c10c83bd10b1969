// Package database stores precomputed almanac days in SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned when a requested record doesn't exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidRange is returned when a range ends before it starts.
var ErrInvalidRange = errors.New("invalid range")

// IsNotFound reports whether err means the record is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// DB is the almanac store.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Config holds database configuration options.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns defaults for SQLite. A single connection keeps
// writers serialised; WAL and the busy timeout are set in the DSN.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// pingTimeout bounds the connectivity check in Open.
const pingTimeout = 5 * time.Second

// Open connects to the SQLite file at cfg.Path, creating its directory if
// needed. The caller must Close the returned DB.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := cfg.Path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("almanac store opened",
		slog.String("path", cfg.Path),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return &DB{DB: sqlDB, logger: logger}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.logger.Info("closing almanac store")
	return db.DB.Close()
}

// Health pings the store and runs a trivial query.
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}

// =============================================================================
// Migrations
// =============================================================================

// Migrate applies every migration newer than the recorded schema versions,
// all in one transaction. It returns how many were applied.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	count := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		applied, err := tx.schemaVersions(ctx)
		if err != nil {
			return err
		}

		for version := 1; version <= len(migrationsSQL); version++ {
			if applied[version] {
				continue
			}
			stmt, ok := migrationsSQL[version]
			if !ok {
				return fmt.Errorf("migration %d not found", version)
			}

			db.logger.Info("applying migration", slog.Int("version", version))
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute migration %d: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("record migration %d: %w", version, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("almanac schema up to date",
		slog.Int("applied", count),
		slog.Int("total", len(migrationsSQL)),
	)
	return count, nil
}

// schemaVersions creates schema_migrations if needed and returns the
// versions already recorded in it.
func (tx *Tx) schemaVersions(ctx context.Context) (map[int]bool, error) {
	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	rows, err := tx.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate migration versions: %w", err)
	}
	return applied, nil
}

// =============================================================================
// Transactions
// =============================================================================

// Tx is a store transaction. Its query methods mirror those on DB.
type Tx struct {
	*sql.Tx
}

// querier is what *sql.DB and *sql.Tx have in common, so each query is
// written once.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BeginTx starts a new transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx}, nil
}

// WithTx runs fn in a transaction, committing if fn returns nil and rolling
// back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
