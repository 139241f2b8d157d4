package session

import (
	"io"
	"log/slog"
)

type options struct {
	auth   Authenticator
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*options)

// WithAuthenticator replaces the default MockAuthenticator.
func WithAuthenticator(a Authenticator) Option {
	return func(o *options) {
		if a != nil {
			o.auth = a
		}
	}
}

// WithLogger sets the logger for session transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.auth == nil {
		o.auth = NewMockAuthenticator()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
