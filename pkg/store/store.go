// Package store binds string keys to typed values hydrated from durable storage.
//
// A Binding is hydrated once per Store, publishes every write synchronously to
// its subscribers, and persists each write before publishing it. Callers must
// treat Set/Update as the only mutation path: values returned by Get are shared
// and must not be modified in place.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/daycraft/pkg/core"
)

// ErrTypeMismatch is returned when a key is bound again with a different value type.
var ErrTypeMismatch = errors.New("key already bound with a different type")

// Store owns the bindings of one profile.
type Store struct {
	storage core.Storage
	logger  *slog.Logger
	broker  *broker

	mu       sync.Mutex
	bindings map[string]reloader
}

// reloader is the type-erased view of a Binding used by the store itself.
type reloader interface {
	Reload(ctx context.Context) error
	subscriberCount() int
}

// New creates a Store on top of an initialized storage.
func New(storage core.Storage, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = discardLogger()
	}
	return &Store{
		storage:  storage,
		logger:   logger,
		broker:   newBroker(o.eventBuffer, logger),
		bindings: make(map[string]reloader),
	}
}

// Storage returns the underlying durable storage.
func (s *Store) Storage() core.Storage {
	return s.storage
}

// Bind returns the binding for key, hydrating it from durable storage on first use.
//
// Missing data yields def. Data that fails to parse also yields def (and is
// overwritten by the next write). A key already bound in this Store returns the
// existing binding, so every caller shares one published value.
func Bind[T any](ctx context.Context, s *Store, key string, def T) (*Binding[T], error) {
	if err := core.ValidateKey(key); err != nil {
		return nil, fmt.Errorf("%w: %q", err, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.bindings[key]; ok {
		b, ok := existing.(*Binding[T])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTypeMismatch, key)
		}
		return b, nil
	}

	b := &Binding[T]{
		store: s,
		key:   key,
		def:   def,
		value: def,
		subs:  make(map[uint64]func(T)),
	}
	b.turn = sync.NewCond(&b.notifyMu)
	if err := b.hydrate(ctx); err != nil {
		return nil, err
	}
	s.bindings[key] = b
	return b, nil
}

// Keys returns the keys bound in this store.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Export returns the raw durable value of every stored key, bound or not.
func (s *Store) Export(ctx context.Context) (map[string][]byte, error) {
	keys, err := s.storage.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		data, err := s.storage.Load(ctx, k)
		if errors.Is(err, core.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", k, err)
		}
		out[k] = data
	}
	return out, nil
}

// Watch observes publishes on keys matching pattern (doublestar syntax, "*" for all).
// The channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return s.broker.subscribe(ctx, pattern)
}

func (s *Store) binding(key string) (reloader, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bindings[key]
	return b, ok
}
