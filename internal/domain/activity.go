package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single planned event on a trip.
// Time, when set, carries the time of day; only its clock part is meaningful.
type Activity struct {
	ID        uuid.UUID  `json:"id"`
	TripID    uuid.UUID  `json:"trip_id"`
	Name      string     `json:"name"`
	Date      time.Time  `json:"date"`
	Time      *time.Time `json:"time,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
