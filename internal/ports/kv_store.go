package ports

import "context"

// A stored key with its raw value.
type KVEntry struct {
	Key   string
	Value []byte
}

// Port: a boundary for the small amount of user state the app persists
// (preferences, favorites, saved and working routes).
type KVStore interface {
	// Return the value for key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Create or overwrite key.
	Set(ctx context.Context, key string, value []byte) error
	// Return all entries whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]KVEntry, error)
	// Remove key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
