package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/metrics"
	"github.com/pkordes/travelmaster/internal/service"
	"github.com/pkordes/travelmaster/testutil"
)

// mockExportStore is a hand-written test double for service.ExportStore.
// Each method is a function field: set only the ones your test needs.
type mockExportStore struct {
	trips        func(ctx context.Context) ([]domain.Trip, error)
	activities   func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	tripExpenses func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}

func (m *mockExportStore) Trips(ctx context.Context) ([]domain.Trip, error) {
	return m.trips(ctx)
}
func (m *mockExportStore) Activities(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.activities(ctx, tripID)
}
func (m *mockExportStore) TripExpenses(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.tripExpenses(ctx, tripID)
}

// compile-time checks: the mock and the façade must satisfy ExportStore.
var (
	_ service.ExportStore = (*mockExportStore)(nil)
	_ service.ExportStore = (*service.DataService)(nil)
)

// ---- helpers ---------------------------------------------------------------

func tripFixtureExport(name string, start time.Time) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Name:        name,
		Destination: "Lisbon",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
	}
}

func activityFixtureExport(tripID uuid.UUID, name string, date time.Time) domain.Activity {
	return domain.Activity{
		ID:     uuid.New(),
		TripID: tripID,
		Name:   name,
		Date:   date,
	}
}

func noExpenses(_ context.Context, _ uuid.UUID) ([]domain.Expense, error) {
	return []domain.Expense{}, nil
}

// ---- Export ----------------------------------------------------------------

func TestExportService_Export_OneTrip_OneActivity(t *testing.T) {
	trip := tripFixtureExport("Summer Tour", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	activity := activityFixtureExport(trip.ID, "Tram 28", time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	location := "Martim Moniz"
	activity.Location = &location

	svc := service.NewExportService(&mockExportStore{
		trips: func(_ context.Context) ([]domain.Trip, error) { return []domain.Trip{trip}, nil },
		activities: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{activity}, nil
		},
		tripExpenses: noExpenses,
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, trip.ID.String(), rows[0].TripID)
	assert.Equal(t, "Summer Tour", rows[0].TripName)
	assert.Equal(t, "Lisbon", rows[0].TripDestination)
	assert.Equal(t, "2025-06-01", rows[0].TripStartDate)
	assert.Equal(t, "2025-06-08", rows[0].TripEndDate)
	assert.Equal(t, "Tram 28", rows[0].ActivityName)
	assert.Equal(t, "Martim Moniz", rows[0].ActivityLocation)
	require.NotNil(t, rows[0].ActivityDate)
	assert.Equal(t, activity.Date, *rows[0].ActivityDate)
	assert.True(t, rows[0].ExpenseTotal.IsZero())
}

func TestExportService_Export_TripWithNoActivities(t *testing.T) {
	trip := tripFixtureExport("Empty Trip", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	svc := service.NewExportService(&mockExportStore{
		trips: func(_ context.Context) ([]domain.Trip, error) { return []domain.Trip{trip}, nil },
		activities: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{}, nil
		},
		tripExpenses: noExpenses,
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1, "trips with no activities should still produce one row")
	assert.Equal(t, "Empty Trip", rows[0].TripName)
	assert.Empty(t, rows[0].ActivityName)
	assert.Nil(t, rows[0].ActivityDate)
}

func TestExportService_Export_MultipleTripsWithExpenseTotals(t *testing.T) {
	trip1 := tripFixtureExport("Trip A", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	trip2 := tripFixtureExport("Trip B", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	activitiesByTrip := map[uuid.UUID][]domain.Activity{
		trip1.ID: {
			activityFixtureExport(trip1.ID, "A1", time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)),
			activityFixtureExport(trip1.ID, "A2", time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)),
		},
		trip2.ID: {
			activityFixtureExport(trip2.ID, "B1", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)),
		},
	}
	expensesByTrip := map[uuid.UUID][]domain.Expense{
		trip1.ID: {
			{Amount: decimal.RequireFromString("10.10")},
			{Amount: decimal.RequireFromString("0.20")},
		},
	}

	svc := service.NewExportService(&mockExportStore{
		trips: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{trip1, trip2}, nil
		},
		activities: func(_ context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
			return activitiesByTrip[tripID], nil
		},
		tripExpenses: func(_ context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
			return expensesByTrip[tripID], nil
		},
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3) // 2 activities for trip1, 1 for trip2
	assert.Equal(t, "A1", rows[0].ActivityName)
	assert.Equal(t, "A2", rows[1].ActivityName)
	assert.Equal(t, "B1", rows[2].ActivityName)
	assert.True(t, rows[0].ExpenseTotal.Equal(decimal.RequireFromString("10.30")))
	assert.True(t, rows[1].ExpenseTotal.Equal(decimal.RequireFromString("10.30")))
	assert.True(t, rows[2].ExpenseTotal.IsZero())
}

func TestExportService_Export_NoTrips(t *testing.T) {
	svc := service.NewExportService(&mockExportStore{
		trips: func(_ context.Context) ([]domain.Trip, error) { return []domain.Trip{}, nil },
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_TripListError(t *testing.T) {
	svc := service.NewExportService(&mockExportStore{
		trips: func(_ context.Context) ([]domain.Trip, error) {
			return nil, domain.ErrNotFound
		},
	})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_ActivityError(t *testing.T) {
	trip := tripFixtureExport("Summer Tour", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	boom := errors.New("disk I/O error")
	svc := service.NewExportService(&mockExportStore{
		trips: func(_ context.Context) ([]domain.Trip, error) { return []domain.Trip{trip}, nil },
		activities: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return nil, boom
		},
	})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, boom)
}

// Export reads through the façade, so a store failure is logged and counted.
func TestExportService_Export_FailureLoggedAndCounted(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	reg := prometheus.NewRegistry()
	var logs bytes.Buffer
	data := service.NewDataService(st, slog.New(slog.NewJSONHandler(&logs, nil)), metrics.New(reg))
	ctx := context.Background()

	_, err := st.DB().ExecContext(ctx, `DROP TABLE trips`)
	require.NoError(t, err)

	_, err = service.NewExportService(data).Export(ctx)

	require.Error(t, err)
	assert.Contains(t, logs.String(), "store operation failed")
	assert.Contains(t, logs.String(), `"kind":"trip"`)
	failures, err := promtest.GatherAndCount(reg, "travelmaster_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
}
