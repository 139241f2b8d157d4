package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/daycraft/pkg/adapters/fs"
	"github.com/aretw0/daycraft/pkg/adapters/kv"
	"github.com/aretw0/daycraft/pkg/adapters/memory"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
	"github.com/aretw0/daycraft/pkg/store"
)

// App is an opened Day Craft profile: the store, every collection and the session.
type App struct {
	Path       string
	Store      *store.Store
	Tasks      *collections.Tasks
	Journal    *collections.Journal
	Notes      *collections.Notes
	Checklists *collections.Checklists
	Bucket     *collections.BucketList
	Prefs      *collections.Preferences
	Session    *session.Manager

	storage core.Storage
	logger  *slog.Logger
}

// Open opens the profile at uri, binds every collection and hydrates the session.
// The uri is adapter-specific (a directory for "fs" and "badger", ignored for "memory").
func Open(ctx context.Context, uri string, opts ...Option) (*App, error) {
	o := buildOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	storage, path, err := initStorage(ctx, uri, o, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Path:    path,
		Store:   store.New(storage, store.WithLogger(logger), store.WithEventBuffer(o.eventBuffer)),
		storage: storage,
		logger:  logger,
	}
	if err := app.bind(ctx, o); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Init prepares the storage for uri without binding anything.
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	o := buildOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	storage, _, err := initStorage(ctx, uri, o, logger)
	return storage, err
}

func (a *App) bind(ctx context.Context, o *options) error {
	var copts []collections.Option
	if o.newID != nil {
		copts = append(copts, collections.WithIDFunc(o.newID))
	}
	if o.clock != nil {
		copts = append(copts, collections.WithClock(o.clock))
	}

	var err error
	if a.Tasks, err = collections.OpenTasks(ctx, a.Store, copts...); err != nil {
		return err
	}
	if a.Journal, err = collections.OpenJournal(ctx, a.Store); err != nil {
		return err
	}
	if a.Notes, err = collections.OpenNotes(ctx, a.Store, copts...); err != nil {
		return err
	}
	if a.Checklists, err = collections.OpenChecklists(ctx, a.Store, copts...); err != nil {
		return err
	}
	if a.Bucket, err = collections.OpenBucketList(ctx, a.Store, copts...); err != nil {
		return err
	}
	if a.Prefs, err = collections.OpenPreferences(ctx, a.Store); err != nil {
		return err
	}

	a.Session = session.NewManager(a.Store,
		session.WithAuthenticator(authenticator(o)),
		session.WithLogger(a.logger),
	)
	return a.Session.Hydrate(ctx)
}

// Storage returns the underlying storage.
func (a *App) Storage() core.Storage {
	return a.storage
}

// Close cancels in-flight logins and releases the storage.
func (a *App) Close() error {
	var errs []error
	if a.Session != nil {
		errs = append(errs, a.Session.Close())
	}
	if c, ok := a.storage.(core.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func authenticator(o *options) session.Authenticator {
	if o.auth != nil {
		return o.auth
	}
	mock := session.NewMockAuthenticator()
	if o.delaysSet {
		mock.LoginDelay = o.loginDelay
		mock.ProviderDelay = o.providerDelay
	}
	if o.newID != nil {
		mock.NewID = o.newID
	}
	return mock
}

func initStorage(ctx context.Context, uri string, o *options, logger *slog.Logger) (core.Storage, string, error) {
	if o.storage != nil {
		if err := o.storage.Initialize(ctx); err != nil {
			return nil, "", err
		}
		return o.storage, uri, nil
	}

	var storage core.Storage
	path := uri
	switch o.adapter {
	case AdapterFS, "":
		path = resolvePath(uri, o, logger)
		storage = fs.NewStorage(fs.Config{
			Path:         path,
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			Logger:       logger,
			SystemDir:    o.systemDir,
			ErrorHandler: o.watcherErrorHandler,
		})
	case AdapterBadger:
		path = resolvePath(uri, o, logger)
		storage = kv.NewStorage(kv.Config{Path: path, ReadOnly: o.readOnly})
	case AdapterMemory:
		storage = memory.New()
	default:
		return nil, "", fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := storage.Initialize(ctx); err != nil {
		return nil, "", err
	}
	return storage, path, nil
}

// resolvePath applies dev safety. Read-only mode and an explicit opt-out bypass it.
func resolvePath(uri string, o *options, logger *slog.Logger) string {
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(uri, useTemp)

	if IsDevRun() {
		switch {
		case o.readOnly:
			logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	if useTemp && resolved != uri {
		logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", resolved)
	}
	return resolved
}
