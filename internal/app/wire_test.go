package app

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"salestrail-route-service/internal/adapters/geocode"
	"salestrail-route-service/internal/adapters/store"
	"salestrail-route-service/internal/config"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/db"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCloser struct {
	name string
	log  *[]string
	err  error
}

func (c recordingCloser) Close() error {
	*c.log = append(*c.log, c.name)
	return c.err
}

func TestClosers_CloseInReverseOrder(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	closers := Closers{
		recordingCloser{name: "db", log: &order},
		recordingCloser{name: "redis", log: &order, err: boom},
	}

	err := closers.Close()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"redis", "db"}, order)
}

func TestOpenStore_Memory(t *testing.T) {
	var closers Closers
	cfg := config.Defaults()

	kv, err := OpenStore(context.Background(), cfg, map[db.Dialect]*sql.DB{}, &closers)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, kv)
	assert.Empty(t, closers)
}

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	var closers Closers
	t.Cleanup(func() { _ = closers.Close() })

	cfg := config.Defaults()
	cfg.Store = "redis"
	cfg.RedisURL = "redis://" + mr.Addr()

	kv, err := OpenStore(context.Background(), cfg, map[db.Dialect]*sql.DB{}, &closers)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	assert.True(t, mr.Exists("k"))
}

func TestOpenStoreAndGeocoder_ShareSQLiteConnection(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "geocodes.json")
	require.NoError(t, os.WriteFile(table, []byte(`{"1 Main St": {"lat": 40.7, "lon": -74.0}}`), 0o644))

	cfg := config.Defaults()
	cfg.Store = "sqlite"
	cfg.SQLitePath = filepath.Join(dir, "app.db")
	cfg.Geocoder = "static"
	cfg.StaticGeocodes = table
	cfg.GeocodeCache = "sqlite"

	ctx := context.Background()
	conns := map[db.Dialect]*sql.DB{}
	var closers Closers
	t.Cleanup(func() { _ = closers.Close() })

	kv, err := OpenStore(ctx, cfg, conns, &closers)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLStore{}, kv)

	g, err := BuildGeocoder(ctx, cfg, conns, &closers)
	require.NoError(t, err)
	assert.IsType(t, &geocode.CachedGeocoder{}, g)
	assert.Len(t, closers, 1, "the cache reuses the store connection")

	p, err := g.Geocode(ctx, "1  Main St")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 40.7, Lon: -74.0}, p)

	var n int
	require.NoError(t, conns[db.SQLite].QueryRowContext(ctx, `SELECT COUNT(*) FROM geocode_cache WHERE address = ?`, "1 Main St").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestBuildGeocoder_WithoutCache(t *testing.T) {
	table := filepath.Join(t.TempDir(), "geocodes.json")
	require.NoError(t, os.WriteFile(table, []byte(`{}`), 0o644))

	cfg := config.Defaults()
	cfg.Geocoder = "static"
	cfg.StaticGeocodes = table

	var closers Closers
	g, err := BuildGeocoder(context.Background(), cfg, map[db.Dialect]*sql.DB{}, &closers)
	require.NoError(t, err)
	assert.IsType(t, &geocode.StaticGeocoder{}, g)
}

func TestWiring_RejectsUnknownKinds(t *testing.T) {
	ctx := context.Background()
	var closers Closers

	cfg := config.Defaults()
	cfg.Store = "etcd"
	_, err := OpenStore(ctx, cfg, map[db.Dialect]*sql.DB{}, &closers)
	assert.ErrorContains(t, err, "unknown STORE")

	cfg = config.Defaults()
	cfg.Geocoder = "bing"
	_, err = BuildGeocoder(ctx, cfg, map[db.Dialect]*sql.DB{}, &closers)
	assert.ErrorContains(t, err, "unknown GEOCODER")

	table := filepath.Join(t.TempDir(), "geocodes.json")
	require.NoError(t, os.WriteFile(table, []byte(`{}`), 0o644))
	cfg = config.Defaults()
	cfg.Geocoder = "static"
	cfg.StaticGeocodes = table
	cfg.GeocodeCache = "memcached"
	_, err = BuildGeocoder(ctx, cfg, map[db.Dialect]*sql.DB{}, &closers)
	assert.ErrorContains(t, err, "unknown GEOCODE_CACHE")
}
