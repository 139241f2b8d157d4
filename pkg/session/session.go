// Package session holds the identity of the signed-in user.
//
// A Manager hydrates the session once from durable storage, replaces it on
// login or signup and clears it on logout. Credential checks go through an
// Authenticator; MockAuthenticator accepts any non-empty credentials.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/aretw0/daycraft/pkg/core"
)

// Key is the storage key of the persisted session.
const Key = "daycraft_user"

var (
	// ErrInvalidCredentials is returned by login when the email or password is empty.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingField is returned by signup when any field is empty.
	ErrMissingField = errors.New("please fill in all fields")
	// ErrNotHydrated is returned when the manager is used before Hydrate.
	ErrNotHydrated = errors.New("session not hydrated")
	// ErrClosed is returned for attempts started after Close.
	ErrClosed = errors.New("session manager closed")
)

// Session identifies the signed-in user.
type Session struct {
	ID       core.ID `json:"id" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Name     string  `json:"name"`
	Provider string  `json:"provider,omitempty"`
}

// Normalize drops a stored session lacking an id or email.
func (s *Session) Normalize() *Session {
	if s == nil || validate.Struct(s) != nil {
		return nil
	}
	return s
}

// NameFromEmail returns the local part of an email address.
func NameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

type ctxKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
