package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/daycraft/pkg/store"
)

// Manager owns the session of one profile. The zero state is loading; Hydrate
// reads the persisted session once and ends loading.
type Manager struct {
	store  *store.Store
	auth   Authenticator
	logger *slog.Logger

	binding atomic.Pointer[store.Binding[*Session]]

	// commitMu serializes session writes with Pending.Cancel.
	commitMu sync.Mutex

	mu      sync.Mutex
	pending map[*Pending]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// NewManager creates a Manager on s. Call Hydrate before use.
func NewManager(s *store.Store, opts ...Option) *Manager {
	o := buildOptions(opts)
	return &Manager{
		store:   s,
		auth:    o.auth,
		logger:  o.logger,
		pending: make(map[*Pending]struct{}),
	}
}

// Hydrate reads the persisted session. Calling it again is a no-op.
func (m *Manager) Hydrate(ctx context.Context) error {
	if m.binding.Load() != nil {
		return nil
	}
	b, err := store.Bind(ctx, m.store, Key, (*Session)(nil))
	if err != nil {
		return fmt.Errorf("failed to hydrate session: %w", err)
	}
	m.binding.Store(b)
	if s, ok := m.Current(); ok {
		m.logger.Debug("session restored", "email", s.Email)
	}
	return nil
}

// Loading reports whether hydration is still pending. Protected content must
// not be rendered while loading.
func (m *Manager) Loading() bool {
	return m.binding.Load() == nil
}

// Current returns the signed-in session.
func (m *Manager) Current() (Session, bool) {
	b := m.binding.Load()
	if b == nil {
		return Session{}, false
	}
	s := b.Get()
	if s == nil {
		return Session{}, false
	}
	return *s, true
}

// Authenticated reports whether a session is present.
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// Login signs in with email and password and waits for the outcome.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	return m.LoginAsync(ctx, email, password).Wait(ctx)
}

// Signup registers and signs in, waiting for the outcome.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (Session, error) {
	return m.SignupAsync(ctx, name, email, password).Wait(ctx)
}

// ProviderLogin signs in through the external provider and waits for the outcome.
func (m *Manager) ProviderLogin(ctx context.Context, hint string) (Session, error) {
	return m.ProviderLoginAsync(ctx, hint).Wait(ctx)
}

// LoginAsync starts a login attempt.
func (m *Manager) LoginAsync(ctx context.Context, email, password string) *Pending {
	return m.start(ctx, "login", func(ctx context.Context) (Session, error) {
		return m.auth.Login(ctx, Credentials{Email: email, Password: password})
	})
}

// SignupAsync starts a signup attempt.
func (m *Manager) SignupAsync(ctx context.Context, name, email, password string) *Pending {
	return m.start(ctx, "signup", func(ctx context.Context) (Session, error) {
		return m.auth.Signup(ctx, Registration{Name: name, Email: email, Password: password})
	})
}

// ProviderLoginAsync starts an external provider login.
func (m *Manager) ProviderLoginAsync(ctx context.Context, hint string) *Pending {
	return m.start(ctx, "provider_login", func(ctx context.Context) (Session, error) {
		return m.auth.ProviderLogin(ctx, hint)
	})
}

// Logout clears the session. It succeeds when nobody is signed in.
func (m *Manager) Logout(ctx context.Context) error {
	b := m.binding.Load()
	if b == nil {
		return ErrNotHydrated
	}
	m.commitMu.Lock()
	defer m.commitMu.Unlock()
	prev := b.Get()
	if err := b.Reset(ctx); err != nil {
		return err
	}
	if prev != nil {
		m.logger.Info("logged out", "email", prev.Email)
	}
	return nil
}

// Subscribe calls fn with every session change; ok is false after logout.
// fn must not call Manager mutators.
func (m *Manager) Subscribe(fn func(s Session, ok bool)) (unsubscribe func(), err error) {
	b := m.binding.Load()
	if b == nil {
		return nil, ErrNotHydrated
	}
	return b.Subscribe(func(s *Session) {
		if s == nil {
			fn(Session{}, false)
			return
		}
		fn(*s, true)
	}), nil
}

// Close cancels every in-flight attempt and waits for them to finish.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	for p := range m.pending {
		p.Cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
	return nil
}

func (m *Manager) start(ctx context.Context, op string, attempt func(context.Context) (Session, error)) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := newPending(func() {
		m.commitMu.Lock()
		defer m.commitMu.Unlock()
		cancel()
	})

	m.mu.Lock()
	switch {
	case m.closed:
		m.mu.Unlock()
		cancel()
		p.finish(Session{}, ErrClosed)
		return p
	case m.binding.Load() == nil:
		m.mu.Unlock()
		cancel()
		p.finish(Session{}, ErrNotHydrated)
		return p
	}
	m.pending[p] = struct{}{}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		s, err := attempt(ctx)
		if err == nil {
			err = m.commit(ctx, s)
		}

		m.mu.Lock()
		delete(m.pending, p)
		m.mu.Unlock()

		if err != nil {
			m.logger.Info("authentication failed", "op", op, "error", err)
			p.finish(Session{}, err)
			return
		}
		m.logger.Info("authenticated", "op", op, "email", s.Email, "provider", s.Provider)
		p.finish(s, nil)
	}()
	return p
}

// commit stores s unless the attempt was cancelled. Concurrent attempts
// resolve last-wins.
func (m *Manager) commit(ctx context.Context, s Session) error {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.binding.Load().Set(context.WithoutCancel(ctx), &s)
}

// Pending is an in-flight authentication attempt.
type Pending struct {
	done    chan struct{}
	cancel  context.CancelFunc
	session Session
	err     error
}

func newPending(cancel context.CancelFunc) *Pending {
	return &Pending{done: make(chan struct{}), cancel: cancel}
}

func (p *Pending) finish(s Session, err error) {
	p.session = s
	p.err = err
	close(p.done)
}

// Done is closed when the attempt resolves.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Cancel abandons the attempt. A cancelled attempt never changes the session;
// cancelling after resolution has no effect.
func (p *Pending) Cancel() {
	p.cancel()
}

// Wait blocks until the attempt resolves or ctx is done.
func (p *Pending) Wait(ctx context.Context) (Session, error) {
	select {
	case <-p.done:
		return p.session, p.err
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}
}
