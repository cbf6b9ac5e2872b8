package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/repo"
)

// ItineraryStore is the part of the façade ItineraryService needs.
type ItineraryStore interface {
	ItineraryItem(ctx context.Context, id uuid.UUID) (domain.ItineraryItem, error)
	UpsertItineraryItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	DeleteItineraryItem(ctx context.Context, id uuid.UUID) error
	TripItinerary(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	InTx(ctx context.Context, fn func(r repo.Set) error) error
}

// ItineraryService implements the itinerary editing rules on top of the façade.
type ItineraryService struct {
	store ItineraryStore
}

// NewItineraryService constructs an ItineraryService backed by the provided store.
func NewItineraryService(s ItineraryStore) *ItineraryService {
	return &ItineraryService{store: s}
}

// Add validates and stores a new item under a fresh ID. Any ID set by the
// caller is replaced, so Add never overwrites an existing item; use Update
// for that.
func (s *ItineraryService) Add(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if err := validateItineraryItem(&item); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Add: %w", err)
	}
	item.ID = uuid.New()
	return s.store.UpsertItineraryItem(ctx, item)
}

// Update overwrites an existing item.
// Returns domain.ErrNotFound if no item with that ID exists.
func (s *ItineraryService) Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if err := validateItineraryItem(&item); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	if _, err := s.store.ItineraryItem(ctx, item.ID); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return s.store.UpsertItineraryItem(ctx, item)
}

// Delete removes an item.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteItineraryItem(ctx, id)
}

// ToggleCompleted flips the completed flag of an item and returns it.
func (s *ItineraryService) ToggleCompleted(ctx context.Context, id uuid.UUID) (domain.ItineraryItem, error) {
	var toggled domain.ItineraryItem
	err := s.store.InTx(ctx, func(r repo.Set) error {
		item, err := r.Itinerary.GetByID(ctx, id)
		if err != nil {
			return err
		}
		item.Completed = !item.Completed
		toggled, err = r.Itinerary.Upsert(ctx, item)
		return err
	})
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.ToggleCompleted: %w", err)
	}
	return toggled, nil
}

// ItemsForTrip returns the items of a trip, oldest date first.
// The result is never nil.
func (s *ItineraryService) ItemsForTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	items, err := s.store.TripItinerary(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ItemsForTrip: %w", err)
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	return items, nil
}

func validateItineraryItem(item *domain.ItineraryItem) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Location = strings.TrimSpace(item.Location)
	if item.TripID == uuid.Nil {
		return fmt.Errorf("%w: item must name a trip", domain.ErrValidation)
	}
	if item.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if item.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if item.Category == "" {
		item.Category = domain.ItineraryOther
	}
	return nil
}
