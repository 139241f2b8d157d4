package collections_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/daycraft/pkg/adapters/memory"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/store"
)

var fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

// seqIDs returns an id source yielding id-1, id-2, ...
func seqIDs() core.IDFunc {
	var n atomic.Int64
	return func() core.ID {
		return core.ID(fmt.Sprintf("id-%d", n.Add(1)))
	}
}

func testOptions() []collections.Option {
	return []collections.Option{
		collections.WithClock(func() time.Time { return fixedNow }),
		collections.WithIDFunc(seqIDs()),
		collections.WithColorFunc(func() string { return "hsl(120, 70%, 80%)" }),
	}
}

func newStore(t *testing.T) (*store.Store, *memory.Storage) {
	t.Helper()
	mem := memory.New()
	return store.New(mem), mem
}

func ptr[T any](v T) *T { return &v }

var ctx = context.Background()
