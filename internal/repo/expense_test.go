package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/repo"
	"github.com/pkordes/travelmaster/internal/store"
	"github.com/pkordes/travelmaster/testutil"
)

func TestExpenseRepo_Create_Defaults(t *testing.T) {
	fixed := time.Date(2025, 8, 9, 10, 11, 12, 0, time.UTC)

	testutil.ForEachBackend(t, func(t *testing.T, s *store.Store) {
		r := testutil.TxSet(t, s, func() time.Time { return fixed })

		got, err := r.Expenses.Create(context.Background(), domain.Expense{
			Amount: decimal.RequireFromString("3.20"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ExpenseOther, got.Category, "empty category defaults to Other")
		assert.True(t, got.Date.Equal(fixed), "zero date defaults to the creation time")
		assert.False(t, got.TripID.Valid)

		stored, err := r.Expenses.GetByID(context.Background(), got.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ExpenseOther, stored.Category)
		assert.True(t, stored.Date.Equal(fixed))
		assert.True(t, stored.CreatedAt.Equal(fixed))
	})
}

func TestExpenseRepo_Create_KeepsAmountExactly(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		trip := mustCreateTrip(t, r, tripFixture())

		created, err := r.Expenses.Create(ctx, domain.Expense{
			TripID:   uuid.NullUUID{UUID: trip.ID, Valid: true},
			Amount:   decimal.RequireFromString("1234.56"),
			Category: domain.ExpenseFood,
			Date:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		stored, err := r.Expenses.GetByID(ctx, created.ID)

		require.NoError(t, err)
		assert.True(t, stored.Amount.Equal(decimal.RequireFromString("1234.56")), "got %s", stored.Amount)
		assert.Equal(t, domain.ExpenseFood, stored.Category)
		require.True(t, stored.TripID.Valid)
		assert.Equal(t, trip.ID, stored.TripID.UUID)
	})
}

func TestExpenseRepo_List_NewestFirst(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		older, err := r.Expenses.Create(ctx, domain.Expense{
			Amount: decimal.NewFromInt(1),
			Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		newer, err := r.Expenses.Create(ctx, domain.Expense{
			Amount: decimal.NewFromInt(2),
			Date:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		got, err := r.Expenses.List(ctx)
		require.NoError(t, err)

		var ids []uuid.UUID
		for _, e := range got {
			if e.ID == older.ID || e.ID == newer.ID {
				ids = append(ids, e.ID)
			}
		}
		assert.Equal(t, []uuid.UUID{newer.ID, older.ID}, ids)
	})
}

func TestExpenseRepo_Update_MovesBetweenTrips(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		trip := mustCreateTrip(t, r, tripFixture())
		created, err := r.Expenses.Create(ctx, domain.Expense{Amount: decimal.NewFromInt(5)})
		require.NoError(t, err)

		created.TripID = uuid.NullUUID{UUID: trip.ID, Valid: true}
		created.Amount = decimal.RequireFromString("7.75")
		updated, err := r.Expenses.Update(ctx, created)

		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(decimal.RequireFromString("7.75")))
		byTrip, err := r.Expenses.ListByTripID(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, byTrip, 1)
		assert.Equal(t, created.ID, byTrip[0].ID)
	})
}

func TestExpenseRepo_NotFound(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()

		_, err := r.Expenses.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = r.Expenses.Update(ctx, domain.Expense{ID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, r.Expenses.Delete(ctx, uuid.New()), domain.ErrNotFound)
	})
}
