// Package memory provides an in-process core.Storage, used by tests and ephemeral profiles.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/daycraft/pkg/core"
)

// Storage implements core.Storage in memory.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes every Store/Remove fail with the given error. Used to
	// exercise persistence failures.
	FailWrites error
}

// New creates an empty memory storage.
func New() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

// Initialize implements core.Storage.
func (s *Storage) Initialize(ctx context.Context) error { return nil }

// Load implements core.Storage.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Store implements core.Storage.
func (s *Storage) Store(ctx context.Context, key string, data []byte) error {
	if err := core.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

// Remove implements core.Storage.
func (s *Storage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.data, key)
	return nil
}

// Keys implements core.Storage.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}
