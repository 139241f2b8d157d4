package core

import (
	"context"
	"regexp"
)

// Storage defines the contract for durable, per-profile key-value storage.
// Values are opaque UTF-8 JSON documents; each write replaces the whole value.
// Adhering to this interface keeps the store independent of the backing
// mechanism (directory of files, embedded database, memory).
type Storage interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories, open database).
	Initialize(ctx context.Context) error

	// Load returns the stored bytes for key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Store replaces the value under key. Readers never observe a partial write.
	Store(ctx context.Context, key string, data []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists all stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// Watchable is implemented by storages that can report changes made outside
// this process (another CLI invocation, a sync tool, a text editor).
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by storages holding resources (file handles, database locks).
type Closer interface {
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateKey rejects keys that cannot be mapped safely onto every adapter
// (no separators, no traversal, no leading dot).
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
