package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// TripStore is the part of the façade TripService needs.
// *DataService satisfies it.
type TripStore interface {
	CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Trip(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	SaveTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	CreateActivity(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error)
	Activities(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	TripExpenses(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}

// TripService implements the trip planner rules on top of the façade.
type TripService struct {
	store TripStore
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(s TripStore) *TripService {
	return &TripService{store: s}
}

// Create validates and persists a new trip.
// Name and destination are required; the dates are taken as given.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(&trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return s.store.CreateTrip(ctx, trip)
}

// Update validates and writes back an edited trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(&trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return s.store.SaveTrip(ctx, trip)
}

// AddActivity validates and persists a new activity on tripID.
func (s *TripService) AddActivity(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.Activity{}, fmt.Errorf("service.TripService.AddActivity: %w: name is required", domain.ErrValidation)
	}
	return s.store.CreateActivity(ctx, tripID, a)
}

// Detail returns a trip with its activities (oldest first) and expenses
// (newest first). Children are never nil.
func (s *TripService) Detail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	trip, err := s.store.Trip(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	}
	activities, err := s.store.Activities(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	}
	expenses, err := s.store.TripExpenses(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return domain.TripDetail{Trip: trip, Activities: activities, Expenses: expenses}, nil
}

func validateTrip(trip *domain.Trip) error {
	trip.Name = strings.TrimSpace(trip.Name)
	trip.Destination = strings.TrimSpace(trip.Destination)
	if trip.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	return nil
}
