package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"salestrail-route-service/internal/platform/db"
)

// InitSchema creates the key-value and geocode cache tables for dialect.
func InitSchema(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	blobType, floatType := "BYTEA", "DOUBLE PRECISION"
	timeType := "TIMESTAMPTZ NOT NULL DEFAULT now()"
	if dialect == db.SQLite {
		blobType, floatType = "BLOB", "REAL"
		timeType = "TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP"
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createKVQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value %s NOT NULL,
		updated_at %s
	);
	`, blobType, timeType)

	createGeocodeCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon %[1]s NOT NULL,
		lat %[1]s NOT NULL
	);
	`, floatType)

	statements := []string{
		createKVQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
