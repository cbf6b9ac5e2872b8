package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/repo"
)

func activityFixture(tripID uuid.UUID) domain.Activity {
	location := "Belém"
	return domain.Activity{
		TripID:   tripID,
		Name:     "Tower visit",
		Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Location: &location,
	}
}

func TestActivityRepo_Create(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		trip := mustCreateTrip(t, r, tripFixture())
		input := activityFixture(trip.ID)
		at := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
		input.Time = &at

		got, err := r.Activities.Create(context.Background(), input)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.Equal(t, trip.ID, got.TripID)

		stored, err := r.Activities.GetByID(context.Background(), got.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tower visit", stored.Name)
		require.NotNil(t, stored.Time)
		assert.True(t, stored.Time.Equal(at), "time of day should round-trip")
		require.NotNil(t, stored.Location)
		assert.Equal(t, "Belém", *stored.Location)
		assert.Nil(t, stored.Notes)
	})
}

func TestActivityRepo_Create_UnknownTrip(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		_, err := r.Activities.Create(context.Background(), activityFixture(uuid.New()))

		assert.Error(t, err, "the trip foreign key should reject an unknown trip")
	})
}

func TestActivityRepo_ListByTripID_OrderedByDate(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		trip := mustCreateTrip(t, r, tripFixture())

		later := activityFixture(trip.ID)
		later.Name = "Later"
		later.Date = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
		earlier := activityFixture(trip.ID)
		earlier.Name = "Earlier"

		_, err := r.Activities.Create(ctx, later)
		require.NoError(t, err)
		_, err = r.Activities.Create(ctx, earlier)
		require.NoError(t, err)

		got, err := r.Activities.ListByTripID(ctx, trip.ID)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Earlier", got[0].Name)
		assert.Equal(t, "Later", got[1].Name)
	})
}

func TestActivityRepo_ListByTripID_Empty(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		got, err := r.Activities.ListByTripID(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestActivityRepo_Update(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		trip := mustCreateTrip(t, r, tripFixture())
		created, err := r.Activities.Create(ctx, activityFixture(trip.ID))
		require.NoError(t, err)

		notes := "bring water"
		created.Name = "Tower visit (morning)"
		created.Notes = &notes
		created.Location = nil

		updated, err := r.Activities.Update(ctx, created)

		require.NoError(t, err)
		assert.Equal(t, "Tower visit (morning)", updated.Name)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "bring water", *updated.Notes)
		assert.Nil(t, updated.Location)
	})
}

func TestActivityRepo_Update_NotFound(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ghost := activityFixture(uuid.New())
		ghost.ID = uuid.New()

		_, err := r.Activities.Update(context.Background(), ghost)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestActivityRepo_Delete(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		trip := mustCreateTrip(t, r, tripFixture())
		created, err := r.Activities.Create(ctx, activityFixture(trip.ID))
		require.NoError(t, err)

		require.NoError(t, r.Activities.Delete(ctx, created.ID))

		_, err = r.Activities.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, r.Activities.Delete(ctx, created.ID), domain.ErrNotFound)
	})
}
