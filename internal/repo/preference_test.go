package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/repo"
)

func TestPreferenceRepo_GetMissing(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		_, err := r.Preferences.Get(context.Background(), "never-set")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPreferenceRepo_SetOverwrites(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		require.NoError(t, r.Preferences.Set(ctx, "k", []byte("one")))
		require.NoError(t, r.Preferences.Set(ctx, "k", []byte("two")))

		got, err := r.Preferences.Get(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("two"), got)
	})
}

func TestPreferenceRepo_Delete(t *testing.T) {
	eachRepoSet(t, func(t *testing.T, r repo.Set) {
		ctx := context.Background()
		require.NoError(t, r.Preferences.Set(ctx, "k", []byte("v")))

		require.NoError(t, r.Preferences.Delete(ctx, "k"))
		require.NoError(t, r.Preferences.Delete(ctx, "k"), "deleting an absent key is not an error")

		_, err := r.Preferences.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
