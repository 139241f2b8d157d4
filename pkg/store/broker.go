package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/daycraft/pkg/core"
)

type watcher struct {
	pattern string
	ch      chan core.Event
}

// broker fans publish events out to watchers without ever blocking a writer.
type broker struct {
	buffer int
	logger *slog.Logger

	mu       sync.Mutex
	watchers map[*watcher]struct{}
}

func newBroker(buffer int, logger *slog.Logger) *broker {
	return &broker{
		buffer:   buffer,
		logger:   logger,
		watchers: make(map[*watcher]struct{}),
	}
}

func (b *broker) subscribe(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	w := &watcher{pattern: pattern, ch: make(chan core.Event, b.buffer)}
	b.mu.Lock()
	b.watchers[w] = struct{}{}
	b.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.watchers, w)
		close(w.ch)
		return nil
	})

	return w.ch, nil
}

func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for w := range b.watchers {
		if ok, _ := doublestar.Match(w.pattern, e.ID); !ok {
			continue
		}
		select {
		case w.ch <- e:
		default:
			b.logger.Debug("watcher is full, dropping event", "key", e.ID, "pattern", w.pattern)
		}
	}
}

func (b *broker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.watchers)
}
