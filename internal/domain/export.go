package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated for every activity on that trip. Trips with no activities yield
// one row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID          string
	TripName        string
	TripDestination string
	TripStartDate   string // "2006-01-02"
	TripEndDate     string // "2006-01-02"

	// Activity fields, zero values when the trip has no activities.
	ActivityName     string
	ActivityLocation string
	ActivityDate     *time.Time
	ActivityNotes    string

	// ExpenseTotal is the sum of every expense attached to the trip.
	ExpenseTotal decimal.Decimal
}
