package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daycraft/pkg/adapters/memory"
	"github.com/aretw0/daycraft/pkg/store"
)

func TestBinding_ConcurrentWritesDeliveredInCommitOrder(t *testing.T) {
	ctx := context.Background()
	b, err := store.Bind(ctx, store.New(memory.New()), "counter", 0)
	require.NoError(t, err)

	var seen []int
	b.Subscribe(func(v int) { seen = append(seen, v) })

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				assert.NoError(t, b.Update(ctx, func(n int) int { return n + 1 }))
			}
		}()
	}
	wg.Wait()

	want := make([]int, writers*perWriter)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, seen)
}

func TestBinding_ReloadRacingWritesEndsOnCurrentValue(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	b, err := store.Bind(ctx, store.New(mem), "counter", 0)
	require.NoError(t, err)

	var last int
	calls := 0
	b.Subscribe(func(v int) {
		last = v
		calls++
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 100 {
			assert.NoError(t, b.Update(ctx, func(n int) int { return n + 1 }))
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 100 {
			// Another process rewrites the key; Follow would call Reload.
			raw := fmt.Sprintf(`{"schema":1,"data":%d}`, 1000*(i+1))
			assert.NoError(t, mem.Store(ctx, "counter", []byte(raw)))
			assert.NoError(t, b.Reload(ctx))
		}
	}()
	wg.Wait()

	assert.Positive(t, calls)
	assert.Equal(t, b.Get(), last)
}
