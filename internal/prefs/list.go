// Package prefs implements the preference-backed stores: the itinerary list
// kept as one JSON blob, and the user's display settings.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/repo"
)

// Preference keys. The names match the ones the mobile app wrote, so a
// migrated preference file keeps working.
const (
	KeyItineraryItems      = "itineraryItems"
	KeyPreferredCurrency   = "preferredCurrency"
	KeyUserName            = "userName"
	KeyOnboardingCompleted = "hasCompletedOnboarding"
)

// ListStore keeps the whole itinerary as a single JSON array under
// KeyItineraryItems. There is no per-item addressing: callers load the list,
// change it in memory and save it back.
//
// Two callers racing load, mutate and save on the same store lose updates:
// the last SaveList wins. The indexed itinerary table in repo does not have
// this problem; ListStore remains as the import/export format.
type ListStore struct {
	prefs repo.PreferenceRepo
	log   *slog.Logger
}

// NewListStore constructs a ListStore over the given preference facility.
func NewListStore(prefs repo.PreferenceRepo, log *slog.Logger) *ListStore {
	if log == nil {
		log = slog.Default()
	}
	return &ListStore{prefs: prefs, log: log}
}

// LoadList returns the stored items in order.
// A missing key yields an empty slice. A value that cannot be decoded is
// logged and also yields an empty slice; only a failed read is an error.
func (s *ListStore) LoadList(ctx context.Context) ([]domain.ItineraryItem, error) {
	data, err := s.prefs.Get(ctx, KeyItineraryItems)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.ItineraryItem{}, nil
		}
		return nil, fmt.Errorf("prefs.ListStore.LoadList: %w", err)
	}

	var items []domain.ItineraryItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.WarnContext(ctx, "discarding undecodable itinerary list",
			"key", KeyItineraryItems,
			"bytes", len(data),
			"error", err,
		)
		return []domain.ItineraryItem{}, nil
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	return items, nil
}

// SaveList encodes items and overwrites the stored list in one write.
func (s *ListStore) SaveList(ctx context.Context, items []domain.ItineraryItem) error {
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("prefs.ListStore.SaveList: encode: %w", err)
	}
	if err := s.prefs.Set(ctx, KeyItineraryItems, data); err != nil {
		return fmt.Errorf("prefs.ListStore.SaveList: %w", err)
	}
	return nil
}

// Clear removes the stored list entirely.
func (s *ListStore) Clear(ctx context.Context) error {
	if err := s.prefs.Delete(ctx, KeyItineraryItems); err != nil {
		return fmt.Errorf("prefs.ListStore.Clear: %w", err)
	}
	return nil
}
