package platform_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daycraft/internal/platform"
	"github.com/aretw0/daycraft/pkg/adapters/memory"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
)

func seqIDs() core.IDFunc {
	var n atomic.Int64
	return func() core.ID { return core.ID(fmt.Sprintf("id-%d", n.Add(1))) }
}

func openFS(t *testing.T, dir string, opts ...platform.Option) *platform.App {
	t.Helper()
	base := []platform.Option{platform.WithAuthDelays(0, 0)}
	app, err := platform.Open(context.Background(), dir, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestOpen_FSProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	app := openFS(t, dir, platform.WithIDFunc(seqIDs()))
	assert.Equal(t, dir, app.Path, "paths inside the temp dir are trusted")
	assert.False(t, app.Session.Loading())

	_, err := app.Session.Login(ctx, "ada@example.com", "x")
	require.NoError(t, err)
	_, ok, err := app.Tasks.Add(ctx, "2024-01-01", "Buy milk")
	require.NoError(t, err)
	require.True(t, ok)
	_, err = app.Prefs.Toggle(ctx)
	require.NoError(t, err)

	for _, key := range []string{"daily_tasks", "theme", session.Key} {
		_, err := os.Stat(filepath.Join(dir, key+".json"))
		assert.NoError(t, err, key)
	}
	require.NoError(t, app.Close())

	again := openFS(t, dir)
	assert.True(t, again.Session.Authenticated())
	assert.Len(t, again.Tasks.For("2024-01-01"), 1)
	assert.Equal(t, "dark", string(again.Prefs.Theme()))
}

func TestOpen_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seed := openFS(t, dir)
	_, _, err := seed.Notes.Add(ctx, "kept", "")
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	ro := openFS(t, dir, platform.WithReadOnly(true))
	require.Len(t, ro.Notes.All(), 1)

	_, _, err = ro.Notes.Add(ctx, "rejected", "")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.Len(t, ro.Notes.All(), 1)
}

func TestOpen_MustExist(t *testing.T) {
	_, err := platform.Open(context.Background(), filepath.Join(t.TempDir(), "missing"), platform.WithMustExist(true))
	assert.Error(t, err)
}

func TestOpen_Adapters(t *testing.T) {
	ctx := context.Background()

	for _, adapter := range []string{platform.AdapterMemory, platform.AdapterBadger} {
		t.Run(adapter, func(t *testing.T) {
			app := openFS(t, t.TempDir(), platform.WithAdapter(adapter))
			_, ok, err := app.Bucket.Add(ctx, "Visit Japan", "Travel")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	_, err := platform.Open(ctx, t.TempDir(), platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")
}

func TestOpen_InjectedStorageAndClock(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	app, err := platform.Open(ctx, "ignored",
		platform.WithStorage(mem),
		platform.WithClock(func() time.Time { return now }),
		platform.WithIDFunc(seqIDs()),
	)
	require.NoError(t, err)
	defer app.Close()

	n, _, err := app.Notes.Add(ctx, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, now, n.CreatedAt)
	assert.Equal(t, core.ID("id-1"), n.ID)

	keys, err := mem.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "notes")
}

type denyAll struct{ *session.MockAuthenticator }

func (denyAll) Login(context.Context, session.Credentials) (session.Session, error) {
	return session.Session{}, session.ErrInvalidCredentials
}

func TestOpen_CustomAuthenticator(t *testing.T) {
	app := openFS(t, t.TempDir(), platform.WithAuthenticator(denyAll{session.NewMockAuthenticator()}))
	_, err := app.Session.Login(context.Background(), "ada@example.com", "x")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}
