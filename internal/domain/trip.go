// Package domain contains the core data types for the TravelMaster data layer.
// This package has no storage dependencies and is imported by every other
// internal package (repo, prefs, service, cli).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate; activities and expenses belong to a trip.
// StartDate and EndDate are independent: no ordering between them is enforced.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripDetail is a trip together with its children, in display order:
// activities oldest first, expenses newest first.
type TripDetail struct {
	Trip       Trip       `json:"trip"`
	Activities []Activity `json:"activities"`
	Expenses   []Expense  `json:"expenses"`
}
