// ABOUTME: Settings store: load with per-field fallback, write-through setters, reset
// ABOUTME: One instance per client profile, backed by a namespaced KV store

package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/2389/showcase/internal/store"
)

// namespacePrefix scopes a profile's keys inside the shared KV store.
const namespacePrefix = "settings:"

// Store reads and writes style preferences for one profile.
type Store struct {
	kv        store.KV
	namespace string
	logger    *slog.Logger
}

// New returns a Store for the given profile.
func New(kv store.KV, profileID string) *Store {
	return &Store{
		kv:        kv,
		namespace: namespacePrefix + profileID,
		logger:    slog.Default().With("component", "settings", "profile", profileID),
	}
}

// Load returns the effective settings. Missing or invalid entries fall back
// to their defaults; Load itself never fails.
func (s *Store) Load(ctx context.Context) StyleSettings {
	out := Defaults()

	if raw, ok := s.read(ctx, KeyPrimaryColor); ok {
		if c, err := ParseColor(raw); err == nil {
			out.PrimaryColor = c
		} else {
			s.logger.Debug("ignoring stored value", "key", KeyPrimaryColor, "error", err)
		}
	}

	if raw, ok := s.read(ctx, KeyFontSize); ok {
		if n, err := parsePixels("font size", raw); err == nil {
			out.FontSizePx = n
		} else {
			s.logger.Debug("ignoring stored value", "key", KeyFontSize, "error", err)
		}
	}

	if raw, ok := s.read(ctx, KeyBorderRadius); ok {
		if n, err := parsePixels("border radius", raw); err == nil {
			out.BorderRadiusPx = n
		} else {
			s.logger.Debug("ignoring stored value", "key", KeyBorderRadius, "error", err)
		}
	}

	if raw, ok := s.read(ctx, KeyTheme); ok {
		if t, err := ParseTheme(raw); err == nil {
			out.Theme = t
		} else {
			s.logger.Debug("ignoring stored value", "key", KeyTheme, "error", err)
		}
	}

	return out
}

// read returns the raw stored value. Storage errors other than a missing key
// are logged and treated as missing.
func (s *Store) read(ctx context.Context, key string) (string, bool) {
	raw, err := s.kv.Get(ctx, s.namespace, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("could not read setting", "key", key, "error", err)
		}
		return "", false
	}
	return raw, true
}

// SetPrimaryColor persists the primary color and returns the updated settings.
func (s *Store) SetPrimaryColor(ctx context.Context, c Color) (StyleSettings, error) {
	parsed, err := ParseColor(string(c))
	if err != nil {
		return StyleSettings{}, err
	}
	return s.write(ctx, KeyPrimaryColor, string(parsed))
}

// SetFontSize persists the font size in pixels and returns the updated settings.
func (s *Store) SetFontSize(ctx context.Context, px int) (StyleSettings, error) {
	return s.write(ctx, KeyFontSize, strconv.Itoa(px))
}

// SetBorderRadius persists the border radius in pixels and returns the updated settings.
func (s *Store) SetBorderRadius(ctx context.Context, px int) (StyleSettings, error) {
	return s.write(ctx, KeyBorderRadius, strconv.Itoa(px))
}

// SetTheme persists the theme and returns the updated settings.
func (s *Store) SetTheme(ctx context.Context, t Theme) (StyleSettings, error) {
	parsed, err := ParseTheme(string(t))
	if err != nil {
		return StyleSettings{}, err
	}
	return s.write(ctx, KeyTheme, string(parsed))
}

func (s *Store) write(ctx context.Context, key, value string) (StyleSettings, error) {
	if err := s.kv.Set(ctx, s.namespace, key, value); err != nil {
		return StyleSettings{}, fmt.Errorf("saving %s: %w", key, err)
	}
	s.logger.Debug("setting saved", "key", key, "value", value)
	return s.Load(ctx), nil
}

// Reset clears every stored preference for the profile and returns the defaults.
func (s *Store) Reset(ctx context.Context) (StyleSettings, error) {
	if err := s.kv.Clear(ctx, s.namespace); err != nil {
		return StyleSettings{}, fmt.Errorf("clearing settings: %w", err)
	}
	s.logger.Info("settings reset")
	return Defaults(), nil
}

// Unset removes one stored preference so that field falls back to its
// default. Unsetting a key that was never stored is not an error.
func (s *Store) Unset(ctx context.Context, key string) (StyleSettings, error) {
	if !isKey(key) {
		return StyleSettings{}, fmt.Errorf("%w: unknown setting %q", ErrInvalidValue, key)
	}
	if err := s.kv.Delete(ctx, s.namespace, key); err != nil && !errors.Is(err, store.ErrNotFound) {
		return StyleSettings{}, fmt.Errorf("removing %s: %w", key, err)
	}
	s.logger.Debug("setting removed", "key", key)
	return s.Load(ctx), nil
}

// Stored returns the raw persisted entries for the profile, ordered by key.
// Values are as written, so an entry Load ignores still shows up here.
func (s *Store) Stored(ctx context.Context) ([]store.Entry, error) {
	entries, err := s.kv.List(ctx, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	return entries, nil
}

func isKey(key string) bool {
	switch key {
	case KeyPrimaryColor, KeyFontSize, KeyBorderRadius, KeyTheme:
		return true
	default:
		return false
	}
}

// Set updates one field by storage key from its string form, as submitted by
// a form or API request.
func (s *Store) Set(ctx context.Context, key, value string) (StyleSettings, error) {
	switch key {
	case KeyPrimaryColor:
		return s.SetPrimaryColor(ctx, Color(value))
	case KeyFontSize:
		n, err := parsePixels("font size", value)
		if err != nil {
			return StyleSettings{}, err
		}
		return s.SetFontSize(ctx, n)
	case KeyBorderRadius:
		n, err := parsePixels("border radius", value)
		if err != nil {
			return StyleSettings{}, err
		}
		return s.SetBorderRadius(ctx, n)
	case KeyTheme:
		return s.SetTheme(ctx, Theme(value))
	default:
		return StyleSettings{}, fmt.Errorf("%w: unknown setting %q", ErrInvalidValue, key)
	}
}
