package store

import (
	"context"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a process-local KVStore used by default and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]ports.KVEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ports.KVEntry, 0)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ports.KVEntry{Key: k, Value: append([]byte(nil), v...)})
		}
	}
	sortEntries(out)
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Byte order, independent of any backend collation.
func sortEntries(entries []ports.KVEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
}
