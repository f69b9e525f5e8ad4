// Package app builds concrete adapters from configuration for the binaries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"salestrail-route-service/internal/adapters/cache"
	"salestrail-route-service/internal/adapters/geocode"
	"salestrail-route-service/internal/adapters/store"
	"salestrail-route-service/internal/config"
	"salestrail-route-service/internal/platform/db"
	"salestrail-route-service/internal/ports"
)

// Closers are released in reverse order of acquisition.
type Closers []io.Closer

func (c Closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		errs = append(errs, c[i].Close())
	}
	return errors.Join(errs...)
}

// OpenSQL opens and migrates the database for dialect.
func OpenSQL(ctx context.Context, dialect db.Dialect, dsn string) (*sql.DB, error) {
	conn, err := db.OpenDialect(dialect, dsn)
	if err != nil {
		return nil, err
	}
	if err := store.InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// OpenStore returns the configured KVStore. SQL handles are shared through conns
// so the geocode cache can reuse them.
func OpenStore(ctx context.Context, cfg config.Config, conns map[db.Dialect]*sql.DB, closers *Closers) (ports.KVStore, error) {
	switch cfg.Store {
	case "memory":
		return store.NewMemoryStore(), nil
	case "postgres", "sqlite":
		conn, err := sharedConn(ctx, cfg, db.Dialect(cfg.Store), conns, closers)
		if err != nil {
			return nil, err
		}
		ss, err := store.NewSQLStore(conn, db.Dialect(cfg.Store))
		if err != nil {
			return nil, err
		}
		return ss, nil
	case "redis":
		rs, err := store.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, rs)
		return rs, nil
	}
	return nil, fmt.Errorf("open store: unknown STORE %q", cfg.Store)
}

// BuildGeocoder returns the configured provider, wrapped by a persistent cache when enabled.
func BuildGeocoder(ctx context.Context, cfg config.Config, conns map[db.Dialect]*sql.DB, closers *Closers) (ports.Geocoder, error) {
	var provider ports.Geocoder
	var err error

	switch cfg.Geocoder {
	case "ors":
		provider, err = geocode.NewORSGeocoder(cfg.ORSAPIKey, cfg.GeocodeRate, geocode.WithORSCountry(cfg.ORSCountry))
	case "google":
		provider, err = geocode.NewGoogleGeocoder(cfg.GoogleAPIKey, cfg.GeocodeRate, "")
	case "static":
		provider, err = geocode.LoadStaticGeocoder(cfg.StaticGeocodes)
	default:
		err = fmt.Errorf("build geocoder: unknown GEOCODER %q", cfg.Geocoder)
	}
	if err != nil {
		return nil, err
	}

	var gc ports.GeocodeCache
	switch cfg.GeocodeCache {
	case "", "none":
		log.Printf("geocode cache disabled provider=%s", cfg.Geocoder)
		return provider, nil
	case "postgres":
		conn, err := sharedConn(ctx, cfg, db.Postgres, conns, closers)
		if err != nil {
			return nil, err
		}
		gc = cache.NewSQLGeocodeCache(conn)
	case "sqlite":
		conn, err := sharedConn(ctx, cfg, db.SQLite, conns, closers)
		if err != nil {
			return nil, err
		}
		gc = cache.NewSqliteGeocodeCache(conn)
	default:
		return nil, fmt.Errorf("build geocoder: unknown GEOCODE_CACHE %q", cfg.GeocodeCache)
	}

	log.Printf("geocode cache enabled provider=%s cache=%s", cfg.Geocoder, cfg.GeocodeCache)
	cached, err := geocode.NewCachedGeocoder(provider, gc, cfg.GeocodeConcurrency)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func sharedConn(ctx context.Context, cfg config.Config, d db.Dialect, conns map[db.Dialect]*sql.DB, closers *Closers) (*sql.DB, error) {
	if conn, ok := conns[d]; ok {
		return conn, nil
	}

	dsn := cfg.DatabaseURL
	if d == db.SQLite {
		dsn = cfg.SQLitePath
	}
	conn, err := OpenSQL(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	conns[d] = conn
	*closers = append(*closers, conn)
	return conn, nil
}
