package session

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aretw0/daycraft/pkg/core"
)

var validate = validator.New()

// Default mock delays.
const (
	DefaultLoginDelay    = 500 * time.Millisecond
	DefaultProviderDelay = 800 * time.Millisecond
)

// DefaultProviderEmail is used when ProviderLogin gets no identity hint.
const DefaultProviderEmail = "user@gmail.com"

// ProviderGoogle marks sessions created through the external provider.
const ProviderGoogle = "google"

// Credentials are the inputs of a login.
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Registration holds the inputs of a signup.
type Registration struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Authenticator verifies credentials and synthesizes sessions.
// Implementations must return promptly once ctx is done.
type Authenticator interface {
	Login(ctx context.Context, c Credentials) (Session, error)
	Signup(ctx context.Context, r Registration) (Session, error)
	ProviderLogin(ctx context.Context, hint string) (Session, error)
}

// MockAuthenticator accepts any non-empty credentials after a simulated delay.
// It performs no credential verification.
type MockAuthenticator struct {
	LoginDelay    time.Duration
	ProviderDelay time.Duration
	NewID         core.IDFunc
}

// NewMockAuthenticator returns a mock with the default delays.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{
		LoginDelay:    DefaultLoginDelay,
		ProviderDelay: DefaultProviderDelay,
		NewID:         core.NewID,
	}
}

// Login implements Authenticator.
func (m *MockAuthenticator) Login(ctx context.Context, c Credentials) (Session, error) {
	if err := sleep(ctx, m.LoginDelay); err != nil {
		return Session{}, err
	}
	if validate.Struct(c) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return Session{ID: m.id(), Email: c.Email, Name: NameFromEmail(c.Email)}, nil
}

// Signup implements Authenticator.
func (m *MockAuthenticator) Signup(ctx context.Context, r Registration) (Session, error) {
	if err := sleep(ctx, m.LoginDelay); err != nil {
		return Session{}, err
	}
	if validate.Struct(r) != nil {
		return Session{}, ErrMissingField
	}
	return Session{ID: m.id(), Email: r.Email, Name: r.Name}, nil
}

// ProviderLogin implements Authenticator. It always succeeds; the id is stable
// per email.
func (m *MockAuthenticator) ProviderLogin(ctx context.Context, hint string) (Session, error) {
	if err := sleep(ctx, m.ProviderDelay); err != nil {
		return Session{}, err
	}
	email := hint
	if email == "" {
		email = DefaultProviderEmail
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(ProviderGoogle+":"+email))
	return Session{
		ID:       core.ID(ProviderGoogle + "_" + id.String()),
		Email:    email,
		Name:     NameFromEmail(email),
		Provider: ProviderGoogle,
	}, nil
}

func (m *MockAuthenticator) id() core.ID {
	if m.NewID == nil {
		return core.NewID()
	}
	return m.NewID()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ Authenticator = (*MockAuthenticator)(nil)
