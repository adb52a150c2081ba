package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/didi/gendry/builder"
)

const fingerprintCacheTableName = "fingerprint_cache_tab"

// FingerprintCacheDAO reads and writes memoised file fingerprints, keyed
// by location and qualified by modification time so a changed file is
// never served a stale entry.
type FingerprintCacheDAO struct {
	db *sql.DB
}

// NewFingerprintCacheDAOWithDB builds a cache DAO against an explicit
// database handle, bypassing the package-level default.
func NewFingerprintCacheDAOWithDB(db *sql.DB) *FingerprintCacheDAO {
	return &FingerprintCacheDAO{db: db}
}

// NewFingerprintCacheDAO builds a cache DAO using the default database.
func NewFingerprintCacheDAO() *FingerprintCacheDAO {
	return &FingerprintCacheDAO{db: Default()}
}

// Entry is a cached pair of fingerprints for one file.
type Entry struct {
	WithHeaderFP    string
	WithoutHeaderFP string
}

// Lookup returns the cached fingerprints for location when the file's
// modification time matches what was cached.
func (dao *FingerprintCacheDAO) Lookup(ctx context.Context, location string, modTime int64) (Entry, bool, error) {
	if dao.db == nil {
		return Entry{}, false, nil
	}

	const query = `SELECT with_header_fp, without_header_fp, file_modtime FROM fingerprint_cache_tab WHERE location = ? LIMIT 1`
	rows, err := dao.db.QueryContext(ctx, query, location)
	if err != nil {
		return Entry{}, false, fmt.Errorf("query fingerprint cache: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		var entry Entry
		var cachedModTime int64
		if err := rows.Scan(&entry.WithHeaderFP, &entry.WithoutHeaderFP, &cachedModTime); err != nil {
			return Entry{}, false, fmt.Errorf("scan fingerprint cache: %w", err)
		}
		if cachedModTime == modTime {
			return entry, true, nil
		}
		return Entry{}, false, nil
	}
	if err := rows.Err(); err != nil {
		return Entry{}, false, err
	}
	return Entry{}, false, nil
}

// Upsert stores or updates the cached fingerprints for location.
func (dao *FingerprintCacheDAO) Upsert(ctx context.Context, location string, modTime int64, entry Entry) error {
	if dao.db == nil {
		return fmt.Errorf("fingerprint cache dao not initialised")
	}

	now := time.Now().Unix()
	payload := []map[string]interface{}{{
		"location":          location,
		"create_time":       now,
		"file_modtime":      modTime,
		"with_header_fp":    entry.WithHeaderFP,
		"without_header_fp": entry.WithoutHeaderFP,
	}}
	insertSQL, insertArgs, err := builder.BuildInsert(fingerprintCacheTableName, payload)
	if err != nil {
		return err
	}
	if _, err := dao.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		if !isUniqueConstraintError(err) {
			return fmt.Errorf("insert fingerprint cache: %w", err)
		}
		updateSQL, updateArgs, err := builder.BuildUpdate(fingerprintCacheTableName,
			map[string]interface{}{"location": location},
			map[string]interface{}{
				"file_modtime":      modTime,
				"with_header_fp":    entry.WithHeaderFP,
				"without_header_fp": entry.WithoutHeaderFP,
			},
		)
		if err != nil {
			return err
		}
		if _, err := dao.db.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("update fingerprint cache: %w", err)
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
