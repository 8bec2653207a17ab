package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zachkp/folio/internal/store"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme is the stored colour scheme. The value is kept as the bare word,
// not as JSON.
type Theme struct {
	kv store.KV
}

func NewTheme(kv store.KV) *Theme {
	return &Theme{kv: kv}
}

// Get returns the stored theme, light when unset or unrecognised.
func (t *Theme) Get(ctx context.Context) (string, error) {
	value, err := t.kv.Get(ctx, KeyTheme)
	if errors.Is(err, store.ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", err
	}
	if string(value) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (t *Theme) Set(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return t.kv.Set(ctx, KeyTheme, []byte(theme))
}

// Toggle switches between light and dark and returns the new theme.
func (t *Theme) Toggle(ctx context.Context) (string, error) {
	current, err := t.Get(ctx)
	if err != nil {
		return "", err
	}
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	return next, t.Set(ctx, next)
}
