package daycraft

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/daycraft/internal/platform"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
	"github.com/aretw0/daycraft/pkg/store"
)

// --- Types ---

// App is an opened profile with every collection bound and the session hydrated.
type App = platform.App

// Binding is a public alias for a typed persisted value.
type Binding[T any] = store.Binding[T]

// Session is a public alias for the signed-in identity.
type Session = session.Session

// --- Configuration ---

// Option defines a functional option for opening a profile.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs", "badger" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorage injects a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithLogger sets the logger for the profile.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly opens the profile read-only.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist requires the profile directory to exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the buffer of each change watcher.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithAuthenticator replaces the mock authenticator.
func WithAuthenticator(a session.Authenticator) Option {
	return platform.WithAuthenticator(a)
}

// WithAuthDelays sets the simulated delays of the mock authenticator.
func WithAuthDelays(login, provider time.Duration) Option {
	return platform.WithAuthDelays(login, provider)
}

// WithIDFunc overrides entity id generation.
func WithIDFunc(fn core.IDFunc) Option {
	return platform.WithIDFunc(fn)
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// Open opens the profile at path.
func Open(ctx context.Context, path string, opts ...Option) (*App, error) {
	return platform.Open(ctx, path, opts...)
}

// Init prepares the storage at path without binding anything.
func Init(ctx context.Context, path string, opts ...Option) (core.Storage, error) {
	return platform.Init(ctx, path, opts...)
}

// Bind binds key of s to a typed value.
func Bind[T any](ctx context.Context, s *store.Store, key string, def T) (*store.Binding[T], error) {
	return store.Bind(ctx, s, key, def)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual profile path based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindProfileRoot looks upwards for a ".daycraft" marker directory.
func FindProfileRoot(startDir string) (string, error) {
	return platform.FindProfileRoot(startDir)
}
