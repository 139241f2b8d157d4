// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/daycraft/pkg/core"
)

// Option configures a Source.
type Option func(*changeSource)

// WithCoalesce merges the changes of one key that arrive within window of the
// first change of a burst into a single event. A key created and then modified
// is reported as created. Zero (the default) forwards every change.
func WithCoalesce(window time.Duration) Option {
	return func(s *changeSource) {
		if window > 0 {
			s.window = window
		}
	}
}

type changeSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	window time.Duration
}

// NewSource creates a lifecycle.Source that emits store change events.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the upstream channel closes,
// then closes the output channel.
func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.run)
	return nil
}

func (s *changeSource) run(ctx context.Context) error {
	defer close(s.out)
	for {
		var first core.Event
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-s.events:
			if !ok {
				return nil
			}
			first = e
		}

		batch, closed := []core.Event{first}, false
		if s.window > 0 {
			batch, closed = s.collect(ctx, batch)
		}
		for _, e := range batch {
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
		if closed {
			return nil
		}
	}
}

// collect gathers the rest of a burst. It reports whether upstream closed.
func (s *changeSource) collect(ctx context.Context, batch []core.Event) ([]core.Event, bool) {
	timer := time.NewTimer(s.window)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return batch, false
		case <-timer.C:
			return batch, false
		case e, ok := <-s.events:
			if !ok {
				return batch, true
			}
			batch = merge(batch, e)
		}
	}
}

// merge folds e into the pending event of the same key, keeping its position.
func merge(batch []core.Event, e core.Event) []core.Event {
	for i, prev := range batch {
		if prev.ID != e.ID {
			continue
		}
		if prev.Type == core.EventCreate && e.Type == core.EventModify {
			e.Type = core.EventCreate
		}
		batch[i] = e
		return batch
	}
	return append(batch, e)
}
