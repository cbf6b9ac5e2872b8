package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/repo"
)

// Settings reads and writes the user's display preferences.
// Unset values read back as their defaults.
type Settings struct {
	prefs repo.PreferenceRepo
}

// NewSettings constructs Settings over the given preference facility.
func NewSettings(prefs repo.PreferenceRepo) *Settings {
	return &Settings{prefs: prefs}
}

// Load returns all settings at once.
func (s *Settings) Load(ctx context.Context) (domain.Settings, error) {
	currency, err := s.Currency(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	name, err := s.UserName(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	done, err := s.OnboardingCompleted(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{Currency: currency, UserName: name, OnboardingCompleted: done}, nil
}

// Currency returns the display currency code, domain.DefaultCurrency if unset.
func (s *Settings) Currency(ctx context.Context) (string, error) {
	v, ok, err := s.get(ctx, KeyPreferredCurrency)
	if err != nil {
		return "", fmt.Errorf("prefs.Settings.Currency: %w", err)
	}
	if !ok || v == "" {
		return domain.DefaultCurrency, nil
	}
	return v, nil
}

// SetCurrency stores a three-letter currency code, upper-cased.
// Returns domain.ErrValidation for anything else.
func (s *Settings) SetCurrency(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !isCurrencyCode(code) {
		return fmt.Errorf("prefs.Settings.SetCurrency: %w: currency must be a three-letter code, got %q", domain.ErrValidation, code)
	}
	if err := s.prefs.Set(ctx, KeyPreferredCurrency, []byte(code)); err != nil {
		return fmt.Errorf("prefs.Settings.SetCurrency: %w", err)
	}
	return nil
}

// UserName returns the display name, empty if unset.
func (s *Settings) UserName(ctx context.Context) (string, error) {
	v, _, err := s.get(ctx, KeyUserName)
	if err != nil {
		return "", fmt.Errorf("prefs.Settings.UserName: %w", err)
	}
	return v, nil
}

// SetUserName stores the display name as given.
func (s *Settings) SetUserName(ctx context.Context, name string) error {
	if err := s.prefs.Set(ctx, KeyUserName, []byte(name)); err != nil {
		return fmt.Errorf("prefs.Settings.SetUserName: %w", err)
	}
	return nil
}

// OnboardingCompleted reports whether onboarding was finished.
// Unset or unparsable values read as false.
func (s *Settings) OnboardingCompleted(ctx context.Context) (bool, error) {
	v, ok, err := s.get(ctx, KeyOnboardingCompleted)
	if err != nil {
		return false, fmt.Errorf("prefs.Settings.OnboardingCompleted: %w", err)
	}
	if !ok {
		return false, nil
	}
	done, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return done, nil
}

// SetOnboardingCompleted stores the onboarding flag.
func (s *Settings) SetOnboardingCompleted(ctx context.Context, done bool) error {
	if err := s.prefs.Set(ctx, KeyOnboardingCompleted, []byte(strconv.FormatBool(done))); err != nil {
		return fmt.Errorf("prefs.Settings.SetOnboardingCompleted: %w", err)
	}
	return nil
}

// get returns the value under key and whether it was set.
func (s *Settings) get(ctx context.Context, key string) (string, bool, error) {
	data, err := s.prefs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
