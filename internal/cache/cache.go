// Package cache provides an on-disk fingerprint memoisation store, so
// repeated runs over a large ROM collection can skip re-hashing files
// whose modification time hasn't changed since the last pass.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var defaultDB *sql.DB

const createFingerprintCacheTableSQL = `
CREATE TABLE IF NOT EXISTS fingerprint_cache_tab (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location VARCHAR(1024) NOT NULL UNIQUE,
	create_time BIGINT NOT NULL,
	file_modtime BIGINT NOT NULL,
	with_header_fp VARCHAR(128) NOT NULL,
	without_header_fp VARCHAR(128) NOT NULL DEFAULT ''
);`

// Open opens (creating if necessary) a sqlite-backed fingerprint cache at
// path, using the pure-Go modernc.org/sqlite driver.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", path, err)
	}
	return db, nil
}

// SetDefault assigns the global database instance.
func SetDefault(db *sql.DB) {
	defaultDB = db
}

// Default returns the configured global database instance.
func Default() *sql.DB {
	return defaultDB
}

// EnsureSchema initialises the fingerprint cache table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, createFingerprintCacheTableSQL)
	return err
}
