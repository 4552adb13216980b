package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteBackend persists blobs in a local SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the blob stored under key, or ok=false if the key has never
// been written.
func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob []byte
	err := b.db.QueryRowContext(ctx, `
		SELECT value FROM blobs WHERE key = ?
	`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read blob %q: %w", key, err)
	}
	return blob, true, nil
}

// Set stores blob under key, replacing any previous value.
func (b *SQLiteBackend) Set(ctx context.Context, key string, blob []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, blob)
	if err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	return nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
