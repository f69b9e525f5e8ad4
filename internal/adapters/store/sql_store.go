package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/db"
	"salestrail-route-service/internal/platform/obs"
	"salestrail-route-service/internal/ports"
)

type sqlQueries struct {
	get    string
	upsert string
	list   string
	delete string
}

var postgresQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = $1;`,
	upsert: `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = now();
	`,
	list:   `SELECT key, value FROM kv_store WHERE substr(key, 1, length($1::text)) = $2::text;`,
	delete: `DELETE FROM kv_store WHERE key = $1;`,
}

var sqliteQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = ?;`,
	upsert: `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP;
	`,
	list:   `SELECT key, value FROM kv_store WHERE substr(key, 1, length(?)) = ?;`,
	delete: `DELETE FROM kv_store WHERE key = ?;`,
}

// SQLStore is a KVStore over the kv_store table in Postgres or SQLite.
type SQLStore struct {
	DB      *sql.DB
	dialect db.Dialect
	q       sqlQueries
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) (*SQLStore, error) {
	if conn == nil {
		return nil, errors.New("sql store: db is nil")
	}

	switch dialect {
	case db.Postgres:
		return &SQLStore{DB: conn, dialect: dialect, q: postgresQueries}, nil
	case db.SQLite:
		return &SQLStore{DB: conn, dialect: dialect, q: sqliteQueries}, nil
	}
	return nil, fmt.Errorf("sql store: unsupported dialect %q", dialect)
}

func (s *SQLStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv."+string(s.dialect)+".Get")(&err)

	var v []byte
	err = s.DB.QueryRowContext(ctx, s.q.get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get key=%q: %w", key, err)
	}
	return v, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv."+string(s.dialect)+".Set")(&err)

	if key == "" {
		return errors.New("kv set: empty key")
	}
	if _, err := s.DB.ExecContext(ctx, s.q.upsert, key, value); err != nil {
		return fmt.Errorf("kv set key=%q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, prefix string) (_ []ports.KVEntry, err error) {
	defer obs.Time(ctx, "kv."+string(s.dialect)+".List")(&err)

	rows, err := s.DB.QueryContext(ctx, s.q.list, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("kv list prefix=%q: %w", prefix, err)
	}
	defer rows.Close()

	out := make([]ports.KVEntry, 0)
	for rows.Next() {
		var e ports.KVEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("kv list: scan rows: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv list: row iteration: %w", err)
	}

	sortEntries(out)
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) (err error) {
	defer obs.Time(ctx, "kv."+string(s.dialect)+".Delete")(&err)

	if _, err := s.DB.ExecContext(ctx, s.q.delete, key); err != nil {
		return fmt.Errorf("kv delete key=%q: %w", key, err)
	}
	return nil
}
