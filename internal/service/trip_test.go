package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/service"
)

// mockTripStore is a hand-written test double for service.TripStore.
// Each method is a function field: set only the ones your test needs.
type mockTripStore struct {
	createTrip     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	trip           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	saveTrip       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	createActivity func(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error)
	activities     func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	tripExpenses   func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}

func (m *mockTripStore) CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.createTrip(ctx, trip)
}
func (m *mockTripStore) Trip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.trip(ctx, id)
}
func (m *mockTripStore) SaveTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.saveTrip(ctx, trip)
}
func (m *mockTripStore) CreateActivity(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.createActivity(ctx, tripID, a)
}
func (m *mockTripStore) Activities(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.activities(ctx, tripID)
}
func (m *mockTripStore) TripExpenses(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.tripExpenses(ctx, tripID)
}

// compile-time check: mockTripStore must satisfy service.TripStore.
var _ service.TripStore = (*mockTripStore)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Name:        "Summer Tour",
		Destination: "Lisbon",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

// echoTripStore echoes whatever it receives back; useful for tests that
// only care about validation, not what the store returns.
func echoTripStore() *mockTripStore {
	return &mockTripStore{
		createTrip: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		saveTrip:   func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		createActivity: func(_ context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error) {
			a.TripID = tripID
			return a, nil
		},
	}
}

// ---- Create / Update -------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripStore())

	trip := validTrip()
	trip.Name = "  Summer Tour  "
	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Summer Tour", got.Name, "name should be trimmed")
}

func TestTripService_Create_MissingName(t *testing.T) {
	svc := service.NewTripService(echoTripStore())

	trip := validTrip()
	trip.Name = "   " // whitespace-only should be treated as empty

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_MissingDestination(t *testing.T) {
	svc := service.NewTripService(echoTripStore())

	trip := validTrip()
	trip.Destination = ""

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndBeforeStartAccepted(t *testing.T) {
	svc := service.NewTripService(echoTripStore())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -3)

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err, "date order is not enforced")
}

func TestTripService_Create_StoreError(t *testing.T) {
	dbErr := errors.New("disk full")
	svc := service.NewTripService(&mockTripStore{
		createTrip: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, dbErr
		},
	})

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, dbErr)
}

func TestTripService_Update_MissingName(t *testing.T) {
	svc := service.NewTripService(echoTripStore())

	trip := validTrip()
	trip.ID = uuid.New()
	trip.Name = ""

	_, err := svc.Update(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_NotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripStore{
		saveTrip: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	})

	_, err := svc.Update(context.Background(), validTrip())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- AddActivity -----------------------------------------------------------

func TestTripService_AddActivity_OK(t *testing.T) {
	svc := service.NewTripService(echoTripStore())
	tripID := uuid.New()

	got, err := svc.AddActivity(context.Background(), tripID, domain.Activity{Name: " Tram 28 "})

	require.NoError(t, err)
	assert.Equal(t, tripID, got.TripID)
	assert.Equal(t, "Tram 28", got.Name)
}

func TestTripService_AddActivity_NameRequired(t *testing.T) {
	svc := service.NewTripService(echoTripStore())

	_, err := svc.AddActivity(context.Background(), uuid.New(), domain.Activity{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Detail ----------------------------------------------------------------

func TestTripService_Detail_OK(t *testing.T) {
	trip := validTrip()
	trip.ID = uuid.New()
	activity := domain.Activity{ID: uuid.New(), TripID: trip.ID, Name: "Tram 28"}
	expense := domain.Expense{ID: uuid.New(), Amount: decimal.NewFromInt(12)}

	svc := service.NewTripService(&mockTripStore{
		trip: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, trip.ID, id)
			return trip, nil
		},
		activities: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{activity}, nil
		},
		tripExpenses: func(_ context.Context, _ uuid.UUID) ([]domain.Expense, error) {
			return []domain.Expense{expense}, nil
		},
	})

	got, err := svc.Detail(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.Equal(t, trip, got.Trip)
	assert.Equal(t, []domain.Activity{activity}, got.Activities)
	assert.Equal(t, []domain.Expense{expense}, got.Expenses)
}

func TestTripService_Detail_EmptyChildrenNotNil(t *testing.T) {
	svc := service.NewTripService(&mockTripStore{
		trip: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id}, nil
		},
		activities:   func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) { return nil, nil },
		tripExpenses: func(_ context.Context, _ uuid.UUID) ([]domain.Expense, error) { return nil, nil },
	})

	got, err := svc.Detail(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got.Activities)
	assert.NotNil(t, got.Expenses)
}

func TestTripService_Detail_NotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripStore{
		trip: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	})

	_, err := svc.Detail(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
