package collections_test

import (
	"testing"

	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketList_ProgressAndGroups(t *testing.T) {
	s, _ := newStore(t)
	bucket, err := collections.OpenBucketList(ctx, s, testOptions()...)
	require.NoError(t, err)

	run, _, err := bucket.Add(ctx, "Run a marathon", collections.CategoryPersonal)
	require.NoError(t, err)
	_, _, err = bucket.Add(ctx, "Learn to cook", collections.CategoryPersonal)
	require.NoError(t, err)
	_, _, err = bucket.Add(ctx, "Visit Japan", collections.CategoryTravel)
	require.NoError(t, err)

	ok, err := bucket.Toggle(ctx, run.ID)
	require.NoError(t, err)
	require.True(t, ok)

	p := bucket.Progress()
	assert.Equal(t, collections.Progress{Completed: 1, Total: 3}, p)
	assert.Equal(t, 33, p.Rounded())

	groups := bucket.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, collections.CategoryPersonal, groups[0].Category)
	assert.Len(t, groups[0].Goals, 2)
	assert.Equal(t, collections.Progress{Completed: 1, Total: 2}, groups[0].Progress)
	assert.Equal(t, collections.CategoryTravel, groups[1].Category)
	assert.Equal(t, 0, groups[1].Progress.Rounded())

	// Grouping is display only; stored order stays newest first.
	assert.Equal(t, "Visit Japan", bucket.All()[0].Text)
}

func TestBucketList_EmptyProgress(t *testing.T) {
	s, _ := newStore(t)
	bucket, err := collections.OpenBucketList(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, bucket.Progress().Percent())
	assert.Empty(t, bucket.Groups())
}

func TestBucketList_InvalidInput(t *testing.T) {
	s, _ := newStore(t)
	bucket, err := collections.OpenBucketList(ctx, s, testOptions()...)
	require.NoError(t, err)

	_, ok, err := bucket.Add(ctx, "", collections.CategoryCareer)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = bucket.Add(ctx, "Skydive", collections.Category("Extreme"))
	require.NoError(t, err)
	assert.False(t, ok)

	g, ok, err := bucket.Add(ctx, "Skydive", collections.CategoryPersonal)
	require.NoError(t, err)
	require.True(t, ok)

	bad := collections.Category("Other")
	ok, err = bucket.Update(ctx, g.ID, collections.GoalPatch{Category: &bad})
	require.NoError(t, err)
	assert.False(t, ok)

	career := collections.CategoryCareer
	ok, err = bucket.Update(ctx, g.ID, collections.GoalPatch{Category: &career, Text: ptr("Skydive twice")})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, collections.CategoryCareer, bucket.All()[0].Category)

	ok, err = bucket.Remove(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = bucket.Remove(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, err := collections.ParseCategory("travel")
	require.NoError(t, err)
	assert.Equal(t, collections.CategoryTravel, c)

	_, err = collections.ParseCategory("space")
	assert.ErrorIs(t, err, collections.ErrUnknownCategory)
}

func TestBucketList_NormalizeDropsUnknownCategory(t *testing.T) {
	s, mem := newStore(t)
	require.NoError(t, mem.Store(ctx, collections.KeyBucketList, []byte(`[
		{"id":"g1","text":"ok","category":"Learning"},
		{"id":"g2","text":"bad","category":"Hobby"}
	]`)))

	bucket, err := collections.OpenBucketList(ctx, s)
	require.NoError(t, err)
	require.Len(t, bucket.All(), 1)
	assert.Equal(t, "g1", bucket.All()[0].ID.String())
}
