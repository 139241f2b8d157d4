package collections

import (
	"context"

	"github.com/aretw0/daycraft/pkg/store"
)

// Theme is the display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Normalize maps unknown values to the light theme.
func (t Theme) Normalize() Theme {
	if t == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Preferences holds the persisted theme.
type Preferences struct {
	binding *store.Binding[Theme]
}

// OpenPreferences binds the theme preference.
func OpenPreferences(ctx context.Context, s *store.Store) (*Preferences, error) {
	b, err := store.Bind(ctx, s, KeyTheme, ThemeLight)
	if err != nil {
		return nil, err
	}
	return &Preferences{binding: b}, nil
}

// Binding exposes the underlying binding.
func (p *Preferences) Binding() *store.Binding[Theme] {
	return p.binding
}

// Theme returns the current theme.
func (p *Preferences) Theme() Theme {
	return p.binding.Get()
}

// Set stores t, normalized.
func (p *Preferences) Set(ctx context.Context, t Theme) (bool, error) {
	t = t.Normalize()
	return p.binding.UpdateIf(ctx, func(prev Theme) (Theme, bool) {
		return t, prev != t
	})
}

// Toggle switches between light and dark and returns the new theme.
func (p *Preferences) Toggle(ctx context.Context) (Theme, error) {
	var next Theme
	_, err := p.binding.UpdateIf(ctx, func(prev Theme) (Theme, bool) {
		if prev == ThemeDark {
			next = ThemeLight
		} else {
			next = ThemeDark
		}
		return next, true
	})
	if err != nil {
		return p.binding.Get(), err
	}
	return next, nil
}
