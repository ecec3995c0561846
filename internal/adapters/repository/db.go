package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the snapshot database. driver is one of "pgx", "postgres"
// or "sqlite"; for sqlite dsn is a file path and the schema is created on open.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		return openSQLite(ctx, dsn)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: connect %s: %w", driver, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func openSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repository: create sqlite dir: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenInMemory opens an empty, migrated sqlite database.
func OpenInMemory(ctx context.Context) (*sqlx.DB, error) {
	return openSQLite(ctx, ":memory:")
}

// Migrate creates the snapshot tables if they do not exist. The DDL is kept
// to the subset shared by postgres and sqlite. Postgres timestamps are
// TIMESTAMPTZ so completion instants keep their offset; sqlite stores the
// driver's RFC 3339 text, which carries it too.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	ts := timestampType(db.DriverName())

	statements := []string{
		`CREATE TABLE IF NOT EXISTS focuses (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			weakness    TEXT NOT NULL DEFAULT '',
			sort_order  INTEGER NOT NULL DEFAULT 0,
			created_at  `+ts+` NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS focus_todos (
			id           TEXT PRIMARY KEY,
			focus_id     TEXT NOT NULL REFERENCES focuses(id) ON DELETE CASCADE,
			title        TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			position     INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS focus_completions (
			focus_id     TEXT NOT NULL REFERENCES focuses(id) ON DELETE CASCADE,
			completed_at `+ts+` NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_progress (
			user_id  TEXT PRIMARY KEY,
			total_xp INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_focuses_user ON focuses(user_id, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_focus_completions_focus ON focus_completions(focus_id, completed_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: migrate: %w", err)
		}
	}
	return nil
}

func timestampType(driver string) string {
	if driver == "sqlite" {
		return "TIMESTAMP"
	}
	return "TIMESTAMPTZ"
}
