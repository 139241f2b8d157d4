package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterBadger = "badger"
	AdapterMemory = "memory"
)

// options holds the internal configuration of a Day Craft profile.
type options struct {
	storage     core.Storage
	logger      *slog.Logger
	adapter     string
	readOnly    bool
	mustExist   bool
	forceTemp   bool
	devSafety   bool
	eventBuffer int
	systemDir   string

	auth          session.Authenticator
	loginDelay    time.Duration
	providerDelay time.Duration
	delaysSet     bool

	newID core.IDFunc
	clock func() time.Time

	watcherErrorHandler func(error)
}

// Option defines a functional option for opening a profile.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		devSafety: true,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAdapter selects the storage adapter by name ("fs", "badger" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithStorage injects a custom storage. The adapter setting is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithLogger sets the logger for the store, the session and the adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReadOnly opens the profile read-only.
// In this mode:
// 1. Every write fails with core.ErrReadOnly and leaves the published value untouched.
// 2. The profile directory is never created.
// 3. Dev safety is BYPASSED (uses the real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist requires the profile directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the profile into the temporary dev directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
// By default (true) the profile is re-rooted into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithEventBuffer sets the buffer of each change watcher. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithSystemDir overrides the marker directory name (".daycraft").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithAuthenticator replaces the mock authenticator.
func WithAuthenticator(a session.Authenticator) Option {
	return func(o *options) {
		o.auth = a
	}
}

// WithAuthDelays sets the simulated delays of the mock authenticator.
func WithAuthDelays(login, provider time.Duration) Option {
	return func(o *options) {
		o.loginDelay = login
		o.providerDelay = provider
		o.delaysSet = true
	}
}

// WithIDFunc overrides entity id generation.
func WithIDFunc(fn core.IDFunc) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watcherErrorHandler = fn
	}
}
