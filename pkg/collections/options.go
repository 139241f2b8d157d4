package collections

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
)

type options struct {
	now   func() time.Time
	newID core.IDFunc
	color func() string
}

// Option configures a collection.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		now:   time.Now,
		newID: core.NewID,
		color: pastelColor,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDFunc overrides id generation.
func WithIDFunc(fn core.IDFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithColorFunc overrides the color assigned to new checklists.
func WithColorFunc(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.color = fn
		}
	}
}

func pastelColor() string {
	return fmt.Sprintf("hsl(%d, 70%%, 80%%)", rand.IntN(360))
}
