// Package kv stores Day Craft profiles in an embedded Badger database.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/aretw0/daycraft/pkg/core"
)

const keyPrefix = "daycraft/"

// Config holds the configuration for the Badger storage.
type Config struct {
	Path     string
	InMemory bool
	ReadOnly bool
}

// Storage implements core.Storage on Badger.
type Storage struct {
	config Config
	db     *badger.DB
}

// NewStorage creates an unopened Badger storage. Call Initialize before use.
func NewStorage(config Config) *Storage {
	return &Storage{config: config}
}

// Initialize opens the database.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	opts := badger.DefaultOptions(s.config.Path).
		WithLoggingLevel(badger.ERROR).
		WithReadOnly(s.config.ReadOnly)
	if s.config.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger at %s: %w", s.config.Path, err)
	}
	s.db = db
	return nil
}

// Load implements core.Storage.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Store implements core.Storage. Each write is a single Badger transaction.
func (s *Storage) Store(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := core.ValidateKey(key); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
}

// Remove implements core.Storage.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(keyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Keys implements core.Storage.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases the database.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "badger"
}

var _ core.Storage = (*Storage)(nil)
var _ core.Closer = (*Storage)(nil)
