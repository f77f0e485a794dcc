// Package preferences persists user interface settings alongside the
// assignment collection.
package preferences

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/repository"
)

// Theme is the colour scheme flag.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when nothing valid has been saved.
const DefaultTheme = ThemeLight

// ParseTheme converts user input into a Theme
func ParseTheme(s string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(s)))
	switch theme {
	case ThemeLight, ThemeDark:
		return theme, nil
	default:
		return "", errors.NewInvalidInputError("theme", s, "must be light or dark")
	}
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Service reads and writes preferences in a key-value store
type Service struct {
	kv     repository.KeyValueStore
	logger *zap.Logger
}

// NewService creates a preferences service
func NewService(kv repository.KeyValueStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{kv: kv, logger: logger}
}

// Theme returns the saved theme. Missing, unreadable or unknown values fall
// back to DefaultTheme.
func (s *Service) Theme(ctx context.Context) Theme {
	value, found, err := s.kv.Get(ctx, repository.KeyTheme)
	if err != nil {
		s.logger.Warn("failed to read theme", zap.Error(err))
		return DefaultTheme
	}
	if !found {
		return DefaultTheme
	}
	theme, err := ParseTheme(value)
	if err != nil {
		s.logger.Debug("ignoring unknown saved theme", zap.String("value", value))
		return DefaultTheme
	}
	return theme
}

// SetTheme saves theme.
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, repository.KeyTheme, string(theme)); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		return errors.NewDatabaseError("save theme", err)
	}
	return nil
}

// ToggleTheme flips between light and dark, saves and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (Theme, error) {
	next := s.Theme(ctx).Toggled()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
