package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Known expense categories. Category is stored as free text, so values
// outside this set are accepted and kept as-is.
const (
	ExpenseFood          = "Food"
	ExpenseTransport     = "Transport"
	ExpenseAccommodation = "Accommodation"
	ExpenseEntertainment = "Entertainment"
	ExpenseShopping      = "Shopping"
	ExpenseOther         = "Other"
)

// ExpenseCategories lists the known categories in display order.
var ExpenseCategories = []string{
	ExpenseFood,
	ExpenseTransport,
	ExpenseAccommodation,
	ExpenseEntertainment,
	ExpenseShopping,
	ExpenseOther,
}

// IsKnownExpenseCategory reports whether c is one of ExpenseCategories.
func IsKnownExpenseCategory(c string) bool {
	for _, k := range ExpenseCategories {
		if k == c {
			return true
		}
	}
	return false
}

// Expense is a single amount spent, optionally attached to a trip.
// Amount has no sign constraint.
type Expense struct {
	ID        uuid.UUID       `json:"id"`
	TripID    uuid.NullUUID   `json:"trip_id"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ExpenseSummary aggregates a set of expenses.
// ByCategory is keyed by the stored category string.
type ExpenseSummary struct {
	Count      int                        `json:"count"`
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}
