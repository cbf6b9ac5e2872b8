package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelmaster/internal/domain"
)

const exportDateLayout = "2006-01-02"

// ExportStore is the subset of DataService the export reads from.
type ExportStore interface {
	Trips(ctx context.Context) ([]domain.Trip, error)
	Activities(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	TripExpenses(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}

// ExportService assembles a full flat export of all trips, activities and
// expense totals.
type ExportService struct {
	store ExportStore
}

// NewExportService constructs an ExportService backed by the provided store.
func NewExportService(s ExportStore) *ExportService {
	return &ExportService{store: s}
}

// Export returns one ExportRow per activity across all trips, trips in list
// order. Trips with no activities contribute one row with empty activity
// fields. The result is never nil.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.store.Trips(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		activities, err := s.store.Activities(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: activities of %s: %w", trip.ID, err)
		}
		expenses, err := s.store.TripExpenses(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: expenses of %s: %w", trip.ID, err)
		}

		base := domain.ExportRow{
			TripID:          trip.ID.String(),
			TripName:        trip.Name,
			TripDestination: trip.Destination,
			TripStartDate:   trip.StartDate.Format(exportDateLayout),
			TripEndDate:     trip.EndDate.Format(exportDateLayout),
			ExpenseTotal:    sumExpenses(expenses),
		}
		if len(activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range activities {
			row := base
			row.ActivityName = a.Name
			date := a.Date
			row.ActivityDate = &date
			if a.Location != nil {
				row.ActivityLocation = *a.Location
			}
			if a.Notes != nil {
				row.ActivityNotes = *a.Notes
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func sumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
