package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/daycraft/pkg/adapters/fs"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStorage(t *testing.T) (*fs.Storage, string) {
	t.Helper()
	dir := t.TempDir()
	s := fs.NewStorage(fs.Config{Path: dir})
	require.NoError(t, s.Initialize(context.Background()))
	return s, dir
}

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, dir := setupStorage(t)

	_, err := s.Load(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Store(ctx, "notes", []byte(`{"schema":1,"data":[]}`)))

	raw, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"schema":1,"data":[]}`, string(raw))

	got, err := s.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	require.NoError(t, s.Remove(ctx, "notes"))
	require.NoError(t, s.Remove(ctx, "notes"), "removing an absent key is not an error")
	_, err = s.Load(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStorage_Keys(t *testing.T) {
	ctx := context.Background()
	s, dir := setupStorage(t)

	require.NoError(t, s.Store(ctx, "theme", []byte(`"dark"`)))
	require.NoError(t, s.Store(ctx, "bucket_list", []byte(`[]`)))
	// Foreign files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fs.TempFilePrefix+"123.json"), []byte("{}"), 0644))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bucket_list", "theme"}, keys)

	_, err = os.Stat(filepath.Join(dir, fs.DefaultSystemDir))
	assert.NoError(t, err, "system dir marks the profile")
}

func TestStorage_InvalidKey(t *testing.T) {
	s, _ := setupStorage(t)
	err := s.Store(context.Background(), "../escape", []byte(`1`))
	assert.ErrorIs(t, err, core.ErrInvalidKey)
	_, err = s.Load(context.Background(), "a/b")
	assert.ErrorIs(t, err, core.ErrInvalidKey)
}

func TestStorage_ReadOnly(t *testing.T) {
	ctx := context.Background()
	_, dir := setupStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.json"), []byte(`"dark"`), 0644))

	ro := fs.NewStorage(fs.Config{Path: dir, ReadOnly: true})
	require.NoError(t, ro.Initialize(ctx))

	got, err := ro.Load(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(got))

	assert.ErrorIs(t, ro.Store(ctx, "theme", []byte(`"light"`)), core.ErrReadOnly)
	assert.ErrorIs(t, ro.Remove(ctx, "theme"), core.ErrReadOnly)

	state := ro.State().(fs.StorageState)
	assert.True(t, state.ReadOnly)
	assert.Equal(t, "fs", ro.ComponentType())
}

func TestStorage_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	s := fs.NewStorage(fs.Config{Path: missing, MustExist: true})
	assert.Error(t, s.Initialize(context.Background()))
}
