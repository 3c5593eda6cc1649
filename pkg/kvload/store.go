package kvload

import "context"

// Store is an open connection to a key-value store.
// A Store is used by one load at a time; implementations need not be
// safe for concurrent use.
type Store interface {
	// Set writes value under key, overwriting any existing value.
	// It returns only after the store has acknowledged the write.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the connection.
	Close() error
}
