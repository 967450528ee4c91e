// Package sqlite stores catalog snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// FileName is the default name of the snapshot database.
const FileName = "miplib2017.db"

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			instance_count INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS instances (
			export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT '',
			objective REAL,
			is_infeasible INTEGER NOT NULL DEFAULT 0,
			is_unbounded INTEGER NOT NULL DEFAULT 0,
			is_optimal INTEGER NOT NULL DEFAULT 0,
			is_benchmark INTEGER NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '[]',
			url_download TEXT NOT NULL DEFAULT '',
			url_info TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (export_id, name)
		);

		CREATE TABLE IF NOT EXISTS metrics (
			export_id TEXT NOT NULL,
			instance_name TEXT NOT NULL,
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			original REAL NOT NULL,
			presolved REAL NOT NULL,
			PRIMARY KEY (export_id, instance_name, kind, key),
			FOREIGN KEY (export_id, instance_name) REFERENCES instances(export_id, name) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_instances_name ON instances(name);
	`

	_, err := db.db.Exec(schema)
	return err
}
