package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Known itinerary categories.
const (
	ItineraryTransportation = "Transportation"
	ItineraryAccommodation  = "Accommodation"
	ItineraryActivity       = "Activity"
	ItineraryDining         = "Dining"
	ItinerarySightseeing    = "Sightseeing"
	ItineraryOther          = "Other"
)

// ItineraryCategories lists the known itinerary categories in display order.
var ItineraryCategories = []string{
	ItineraryTransportation,
	ItineraryAccommodation,
	ItineraryActivity,
	ItineraryDining,
	ItinerarySightseeing,
	ItineraryOther,
}

// ItineraryItem is one scheduled entry of a trip's itinerary.
//
// TripID is a loose reference: nothing checks that the trip exists, and items
// are not removed when their trip is deleted. Time is free text ("09:30",
// "after lunch") and is never parsed.
type ItineraryItem struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"tripId"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes"`
	Completed bool      `json:"completed"`
}

// appleEpoch is the reference date used by blobs written by the mobile app,
// whose dates are encoded as seconds relative to it.
var appleEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// MarshalJSON encodes the date as RFC 3339 in UTC.
func (i ItineraryItem) MarshalJSON() ([]byte, error) {
	type plain ItineraryItem
	p := plain(i)
	p.Date = p.Date.UTC()
	return json.Marshal(p)
}

// UnmarshalJSON accepts the date either as an RFC 3339 string or as a number
// of seconds since 2001-01-01 UTC.
func (i *ItineraryItem) UnmarshalJSON(data []byte) error {
	type plain ItineraryItem
	var aux struct {
		plain
		Date json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*i = ItineraryItem(aux.plain)

	date, err := decodeItemDate(aux.Date)
	if err != nil {
		return err
	}
	i.Date = date
	return nil
}

func decodeItemDate(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return time.Time{}, fmt.Errorf("itinerary date: %w", err)
		}
		return t.UTC(), nil
	}
	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return time.Time{}, fmt.Errorf("itinerary date: %w", err)
	}
	whole, frac := math.Modf(secs)
	return appleEpoch.Add(time.Duration(whole)*time.Second + time.Duration(frac*float64(time.Second))), nil
}
