package store

import (
	"context"
	"os"
	"path/filepath"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/db"
	"salestrail-route-service/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKVStore checks the behavior every KVStore must share.
func exerciseKVStore(t *testing.T, s ports.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "salestrail:p:routes:v1:missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(ctx, "salestrail:p:routes:v1:b", []byte(`{"id":"b"}`)))
	require.NoError(t, s.Set(ctx, "salestrail:p:routes:v1:a", []byte(`{"id":"a"}`)))
	require.NoError(t, s.Set(ctx, "salestrail:p:favorites:v1", []byte(`{}`)))
	require.NoError(t, s.Set(ctx, "salestrail:q:routes:v1:c", []byte(`{"id":"c"}`)))
	// Glob and LIKE metacharacters are literal in prefixes.
	require.NoError(t, s.Set(ctx, "salestrail:p*:routes:v1:x", []byte(`{"id":"x"}`)))
	require.NoError(t, s.Set(ctx, "salestrail:p%:routes:v1:y", []byte(`{"id":"y"}`)))

	got, err := s.Get(ctx, "salestrail:p:routes:v1:a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a"}`, string(got))

	require.NoError(t, s.Set(ctx, "salestrail:p:routes:v1:a", []byte(`{"id":"a","v":2}`)))
	got, err = s.Get(ctx, "salestrail:p:routes:v1:a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","v":2}`, string(got))

	entries, err := s.List(ctx, "salestrail:p:routes:v1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "salestrail:p:routes:v1:a", entries[0].Key)
	assert.Equal(t, "salestrail:p:routes:v1:b", entries[1].Key)
	assert.JSONEq(t, `{"id":"b"}`, string(entries[1].Value))

	entries, err = s.List(ctx, "salestrail:p*:")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "salestrail:p*:routes:v1:x", entries[0].Key)

	entries, err = s.List(ctx, "salestrail:p%:")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = s.List(ctx, "nothing-here:")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, s.Delete(ctx, "salestrail:p:routes:v1:a"))
	require.NoError(t, s.Delete(ctx, "salestrail:p:routes:v1:a"))
	_, err = s.Get(ctx, "salestrail:p:routes:v1:a")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseKVStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLStore_SQLite(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, db.SQLite))
	// Idempotent.
	require.NoError(t, InitSchema(context.Background(), conn, db.SQLite))

	s, err := NewSQLStore(conn, db.SQLite)
	require.NoError(t, err)
	exerciseKVStore(t, s)
}

func TestSQLStore_Postgres(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	require.NoError(t, InitSchema(ctx, conn, db.Postgres))
	_, err = conn.ExecContext(ctx, `DELETE FROM kv_store WHERE key LIKE 'salestrail:%' OR key LIKE 'nothing-here:%'`)
	require.NoError(t, err)

	s, err := NewSQLStore(conn, db.Postgres)
	require.NoError(t, err)
	exerciseKVStore(t, s)
}

func TestNewSQLStore_RejectsBadInput(t *testing.T) {
	_, err := NewSQLStore(nil, db.SQLite)
	require.Error(t, err)

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = NewSQLStore(conn, db.Dialect("mysql"))
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s, err := NewRedisStore(client)
	require.NoError(t, err)
	exerciseKVStore(t, s)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := OpenRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("k"))

	_, err = OpenRedis(context.Background(), "not a url")
	require.Error(t, err)
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `a\*b\?c\[d\]e\\f`, escapeGlob(`a*b?c[d]e\f`))
}
