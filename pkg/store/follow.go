package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/daycraft/pkg/core"
)

// ErrNotWatchable is returned by Follow when the storage cannot report external changes.
var ErrNotWatchable = errors.New("storage does not support watching")

// Follow reloads bound keys whenever the durable storage reports a change made
// outside this store. Writes made through this store are recognised by their
// bytes and do not trigger a second notification. Follow returns once the
// storage watch is established; reloading stops when ctx is done.
func (s *Store) Follow(ctx context.Context) error {
	w, ok := s.storage.(core.Watchable)
	if !ok {
		return ErrNotWatchable
	}

	events, err := w.Watch(ctx, "*")
	if err != nil {
		return fmt.Errorf("failed to watch storage: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				b, bound := s.binding(e.ID)
				if !bound {
					continue
				}
				if err := b.Reload(ctx); err != nil {
					s.logger.Error("reload failed", "key", e.ID, "error", err)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("follower panic", "error", err)
	}))

	return nil
}
