package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/cosmic-api/internal/repository"
	"github.com/deppfellow/cosmic-api/internal/repository/repositorytest"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()

	result, err := repository.Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(repository.SamplePlanets), result.Planets)
	assert.Equal(t, len(repository.SampleScientists), result.Scientists)
	assert.Equal(t, 1, store.Commits)

	err = store.Read(ctx, func(repos *repository.Repositories) error {
		planets, err := repos.Planets.List(ctx)
		require.NoError(t, err)
		require.Len(t, planets, len(repository.SamplePlanets))

		assert.Equal(t, "TauCeti F", planets[0].Name)
		assert.Nil(t, planets[len(planets)-1].DistanceFromEarth)
		assert.Nil(t, planets[len(planets)-1].NearestStar)

		scientists, err := repos.Scientists.List(ctx)
		require.NoError(t, err)
		assert.Len(t, scientists, len(repository.SampleScientists))
		return nil
	})
	require.NoError(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()

	_, err := repository.Seed(ctx, store)
	require.NoError(t, err)

	result, err := repository.Seed(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, result.Planets)
	assert.Zero(t, result.Scientists)
}

func TestSeedSkipsPopulatedTables(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	store.SeedScientist("Ada", "Astrophysics")

	result, err := repository.Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(repository.SamplePlanets), result.Planets)
	assert.Zero(t, result.Scientists)
}

func TestSeedReportsStoreFailure(t *testing.T) {
	store := repositorytest.NewStore()
	store.Err = errors.New("connection refused")

	result, err := repository.Seed(context.Background(), store)
	require.Error(t, err)
	assert.Equal(t, repository.SeedResult{}, result)
}
