package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"
	"strings"
	"sync"
)

const (
	DefaultProfile = "default"
	keyRoot        = "salestrail"
)

// profileKey builds "salestrail:<profile>:<kind>:v1[:<id>]".
func profileKey(profile, kind string, id ...string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = DefaultProfile
	}
	parts := append([]string{keyRoot, profile, kind, "v1"}, id...)
	return strings.Join(parts, ":")
}

// keyLocks serializes read-modify-write cycles on one key within this process.
// The zero value is ready to use.
type keyLocks struct {
	m sync.Map
}

func (l *keyLocks) lock(key string) (unlock func()) {
	v, _ := l.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func getJSON(ctx context.Context, store ports.KVStore, key string, v any) error {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, store ports.KVStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

// getJSONOrZero leaves v untouched when key does not exist.
func getJSONOrZero(ctx context.Context, store ports.KVStore, key string, v any) error {
	err := getJSON(ctx, store, key, v)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
