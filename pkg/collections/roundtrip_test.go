package collections_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/store"
)

// Adding an entity and removing it again must leave the collection exactly as
// it was, in memory and in durable storage.

func assertRestored[T any](t *testing.T, before T, b *store.Binding[T], reopened T) {
	t.Helper()
	if diff := cmp.Diff(before, b.Get(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip changed the collection (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, reopened, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip changed the stored collection (-want +got):\n%s", diff)
	}
}

func TestNotes_AddRemoveRoundTrip(t *testing.T) {
	s, mem := newStore(t)
	notes, err := collections.OpenNotes(ctx, s, testOptions()...)
	require.NoError(t, err)
	_, _, err = notes.Add(ctx, "keep me", "")
	require.NoError(t, err)
	before := notes.Binding().Get()

	n, ok, err := notes.Add(ctx, "temporary", "scratch")
	require.NoError(t, err)
	require.True(t, ok)
	removed, err := notes.Remove(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	reopened, err := collections.OpenNotes(ctx, store.New(mem))
	require.NoError(t, err)
	assertRestored(t, before, notes.Binding(), reopened.Binding().Get())
}

func TestBucketList_AddRemoveRoundTrip(t *testing.T) {
	s, mem := newStore(t)
	bucket, err := collections.OpenBucketList(ctx, s, testOptions()...)
	require.NoError(t, err)
	_, _, err = bucket.Add(ctx, "Visit Japan", collections.CategoryTravel)
	require.NoError(t, err)
	before := bucket.Binding().Get()

	g, ok, err := bucket.Add(ctx, "Learn Go", collections.CategoryLearning)
	require.NoError(t, err)
	require.True(t, ok)
	removed, err := bucket.Remove(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	reopened, err := collections.OpenBucketList(ctx, store.New(mem))
	require.NoError(t, err)
	assertRestored(t, before, bucket.Binding(), reopened.Binding().Get())
}

func TestChecklists_AddRemoveRoundTrip(t *testing.T) {
	s, mem := newStore(t)
	lists, err := collections.OpenChecklists(ctx, s, testOptions()...)
	require.NoError(t, err)
	packing, _, err := lists.Create(ctx, "Packing")
	require.NoError(t, err)
	_, _, err = lists.AddItem(ctx, packing.ID, "socks")
	require.NoError(t, err)
	before := lists.Binding().Get()

	tmp, ok, err := lists.Create(ctx, "Temporary")
	require.NoError(t, err)
	require.True(t, ok)
	_, _, err = lists.AddItem(ctx, tmp.ID, "goes with its list")
	require.NoError(t, err)
	removed, err := lists.Remove(ctx, tmp.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	reopened, err := collections.OpenChecklists(ctx, store.New(mem))
	require.NoError(t, err)
	assertRestored(t, before, lists.Binding(), reopened.Binding().Get())
}

func TestChecklists_AddRemoveItemRoundTrip(t *testing.T) {
	s, mem := newStore(t)
	lists, err := collections.OpenChecklists(ctx, s, testOptions()...)
	require.NoError(t, err)
	packing, _, err := lists.Create(ctx, "Packing")
	require.NoError(t, err)
	_, _, err = lists.AddItem(ctx, packing.ID, "socks")
	require.NoError(t, err)
	before := lists.Binding().Get()

	item, ok, err := lists.AddItem(ctx, packing.ID, "passport")
	require.NoError(t, err)
	require.True(t, ok)
	removed, err := lists.RemoveItem(ctx, packing.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	reopened, err := collections.OpenChecklists(ctx, store.New(mem))
	require.NoError(t, err)
	assertRestored(t, before, lists.Binding(), reopened.Binding().Get())
}
