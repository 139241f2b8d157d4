package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/daycraft/pkg/adapters/memory"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Load(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Store(ctx, "notes", []byte(`[]`)))
	require.NoError(t, s.Store(ctx, "checklists", []byte(`[]`)))

	got, err := s.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// Returned bytes are a copy.
	got[0] = 'x'
	again, _ := s.Load(ctx, "notes")
	assert.Equal(t, `[]`, string(again))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"checklists", "notes"}, keys)

	require.NoError(t, s.Remove(ctx, "notes"))
	require.NoError(t, s.Remove(ctx, "notes"))
	_, err = s.Load(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStorage_FailWrites(t *testing.T) {
	s := memory.New()
	boom := errors.New("disk full")
	s.FailWrites = boom

	assert.ErrorIs(t, s.Store(context.Background(), "notes", []byte(`[]`)), boom)
	assert.ErrorIs(t, s.Store(context.Background(), "../x", nil), core.ErrInvalidKey)
}
