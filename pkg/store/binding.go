package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/daycraft/pkg/core"
)

var errCorrupt = errors.New("corrupted value")

// Normalizer is implemented by stored types that repair or reject fields at the
// storage boundary (drop invalid records, default unknown enums).
type Normalizer[T any] interface {
	Normalize() T
}

// Binding associates a key with a typed value mirrored in durable storage.
type Binding[T any] struct {
	store *Store
	key   string
	def   T

	mu      sync.Mutex
	value   T
	lastRaw []byte // durable bytes matching value; nil when nothing is stored
	subs    map[uint64]func(T)
	nextSub uint64
	seq     uint64 // commits so far

	notifyMu  sync.Mutex
	turn      *sync.Cond // on notifyMu
	delivered uint64     // commits whose notifications are done
}

// Key returns the storage key.
func (b *Binding[T]) Key() string {
	return b.key
}

// Get returns the current published value.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set replaces the value.
func (b *Binding[T]) Set(ctx context.Context, v T) error {
	_, err := b.UpdateIf(ctx, func(T) (T, bool) { return v, true })
	return err
}

// Update computes the next value from the previous one.
func (b *Binding[T]) Update(ctx context.Context, fn func(prev T) T) error {
	_, err := b.UpdateIf(ctx, func(prev T) (T, bool) { return fn(prev), true })
	return err
}

// UpdateIf computes the next value from the previous one. When fn reports no
// change nothing is persisted and no subscriber is notified.
//
// On success the value is persisted, published, and every current subscriber
// is called exactly once before UpdateIf returns. If persisting fails the
// published value is left untouched.
func (b *Binding[T]) UpdateIf(ctx context.Context, fn func(prev T) (T, bool)) (bool, error) {
	b.mu.Lock()
	next, changed := fn(b.value)
	if !changed {
		b.mu.Unlock()
		return false, nil
	}

	raw, err := encode(next)
	if err != nil {
		b.mu.Unlock()
		return false, err
	}

	eventType := core.EventModify
	if b.lastRaw == nil {
		eventType = core.EventCreate
	}

	if err := b.store.storage.Store(ctx, b.key, raw); err != nil {
		b.mu.Unlock()
		return false, fmt.Errorf("failed to persist %s: %w", b.key, err)
	}
	b.value = next
	b.lastRaw = raw
	seq, subs := b.commit()
	b.mu.Unlock()

	b.store.logger.Debug("value persisted", "key", b.key, "bytes", len(raw))
	b.deliver(seq, subs, next, eventType)
	return true, nil
}

// Reset removes the durable copy and republishes the default value.
func (b *Binding[T]) Reset(ctx context.Context) error {
	b.mu.Lock()
	if err := b.store.storage.Remove(ctx, b.key); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("failed to remove %s: %w", b.key, err)
	}
	b.value = b.def
	b.lastRaw = nil
	seq, subs := b.commit()
	def := b.def
	b.mu.Unlock()

	b.deliver(seq, subs, def, core.EventDelete)
	return nil
}

// Reload re-reads durable storage. Subscribers are notified only if the durable
// bytes differ from the last known copy. Unparseable data (for example a file
// caught mid-write by a non-atomic external writer) keeps the current value.
func (b *Binding[T]) Reload(ctx context.Context) error {
	b.mu.Lock()
	v, raw, err := b.read(ctx)
	if errors.Is(err, errCorrupt) {
		b.mu.Unlock()
		b.store.logger.Warn("ignoring unparseable external change", "key", b.key, "error", err)
		return nil
	}
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if bytes.Equal(raw, b.lastRaw) && (raw == nil) == (b.lastRaw == nil) {
		b.mu.Unlock()
		return nil
	}
	b.value = v
	b.lastRaw = raw
	seq, subs := b.commit()
	b.mu.Unlock()

	eventType := core.EventModify
	if raw == nil {
		eventType = core.EventDelete
	}
	b.deliver(seq, subs, v, eventType)
	return nil
}

// Subscribe registers fn to be called with every published value.
// The returned function unregisters it.
//
// Values are delivered in commit order, also when local writes race reloads
// from Follow, so the last value fn sees is the one Get returns. fn may call
// Get but must not write to the same binding.
func (b *Binding[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

func (b *Binding[T]) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// hydrate loads the durable value, falling back to the default on missing or
// corrupted data. Called before the binding is published.
func (b *Binding[T]) hydrate(ctx context.Context) error {
	v, raw, err := b.read(ctx)
	if errors.Is(err, errCorrupt) {
		b.store.logger.Warn("stored value is corrupted, falling back to default", "key", b.key, "error", err)
		b.value = b.def
		b.lastRaw = raw
		return nil
	}
	if err != nil {
		return err
	}
	b.value = v
	b.lastRaw = raw
	return nil
}

// read loads and decodes the durable value. A missing key yields the default
// and nil bytes.
func (b *Binding[T]) read(ctx context.Context) (T, []byte, error) {
	raw, err := b.store.storage.Load(ctx, b.key)
	if errors.Is(err, core.ErrNotFound) {
		return b.def, nil, nil
	}
	if err != nil {
		return b.def, nil, fmt.Errorf("failed to load %s: %w", b.key, err)
	}
	if raw == nil {
		raw = []byte{}
	}

	v, legacy, dropped, err := decode[T](raw)
	if errors.Is(err, ErrUnsupportedSchema) {
		return b.def, nil, fmt.Errorf("%s: %w", b.key, err)
	}
	if err != nil {
		return b.def, raw, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if len(dropped) > 0 {
		b.store.logger.Warn("dropped malformed records", "key", b.key, "count", len(dropped), "error", errors.Join(dropped...))
	}
	if legacy {
		b.store.logger.Debug("legacy value without schema, will upgrade on next write", "key", b.key)
	}

	if n, ok := any(v).(Normalizer[T]); ok {
		v = n.Normalize()
	}
	return v, raw, nil
}

func (b *Binding[T]) snapshotSubscribers() []func(T) {
	subs := make([]func(T), 0, len(b.subs))
	for i := uint64(0); i < b.nextSub; i++ {
		if fn, ok := b.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

// commit numbers a published change. Called with b.mu held.
func (b *Binding[T]) commit() (uint64, []func(T)) {
	b.seq++
	return b.seq, b.snapshotSubscribers()
}

// deliver notifies subs and publishes the change once every earlier commit
// has been delivered.
func (b *Binding[T]) deliver(seq uint64, subs []func(T), v T, eventType core.EventType) {
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()
	for b.delivered+1 != seq {
		b.turn.Wait()
	}
	defer func() {
		b.delivered = seq
		b.turn.Broadcast()
	}()

	b.notify(subs, v)
	b.store.broker.publish(core.NewEvent(eventType, b.key))
}

func (b *Binding[T]) notify(subs []func(T), v T) {
	for _, fn := range subs {
		fn(v)
	}
}
