package store

import (
	"context"
	"errors"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/obs"
	"salestrail-route-service/internal/ports"
	"strings"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// RedisStore is a KVStore backed by plain Redis string keys.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis store: client is nil")
	}
	return &RedisStore{client: client}, nil
}

// OpenRedis parses a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis store: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis store: ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Close() error { return r.client.Close() }

func (r *RedisStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.redis.Get")(&err)

	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get key=%q: %w", key, err)
	}
	return v, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.redis.Set")(&err)

	if key == "" {
		return errors.New("kv set: empty key")
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set key=%q: %w", key, err)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context, prefix string) (_ []ports.KVEntry, err error) {
	defer obs.Time(ctx, "kv.redis.List")(&err)

	var keys []string
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kv list prefix=%q: scan: %w", prefix, err)
	}

	out := make([]ports.KVEntry, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("kv list prefix=%q: mget: %w", prefix, err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Deleted between SCAN and MGET.
			continue
		}
		out = append(out, ports.KVEntry{Key: keys[i], Value: []byte(s)})
	}

	sortEntries(out)
	return out, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) (err error) {
	defer obs.Time(ctx, "kv.redis.Delete")(&err)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv delete key=%q: %w", key, err)
	}
	return nil
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob makes prefix literal inside a SCAN MATCH pattern.
func escapeGlob(prefix string) string {
	return globReplacer.Replace(prefix)
}
