package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/cosmic-api/internal/config"
	"github.com/deppfellow/cosmic-api/internal/database"
	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository"
)

// TestDBURIEnv names the variable that points the integration tests at a
// disposable PostgreSQL database.
const TestDBURIEnv = "COSMIC_TEST_DB_URI"

func setupPgStore(t *testing.T) (*repository.PgStore, *pgxpool.Pool) {
	t.Helper()

	uri := os.Getenv(TestDBURIEnv)
	if uri == "" {
		t.Skipf("%s not set", TestDBURIEnv)
	}

	ctx := context.Background()
	cfg := config.Default()
	cfg.Database.URI = uri
	logger := zerolog.Nop()

	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	pool, err := pgxpool.New(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE missions, scientists, planets RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return repository.NewStore(pool), pool
}

func TestPgStoreMissionLifecycle(t *testing.T) {
	store, _ := setupPgStore(t)
	ctx := context.Background()

	var (
		scientist model.Scientist
		planet    model.Planet
	)
	err := store.Write(ctx, func(repos *repository.Repositories) error {
		var err error
		scientist, err = repos.Scientists.Create(ctx, "Mel T. Valent", "xenobiology")
		if err != nil {
			return err
		}
		planet, err = repos.Planets.Create(ctx, model.Planet{Name: "Rogue Planet X"})
		if err != nil {
			return err
		}
		_, err = repos.Missions.Create(ctx, "Survey", scientist.ID, planet.ID)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), scientist.ID)
	assert.Nil(t, planet.DistanceFromEarth)

	err = store.Read(ctx, func(repos *repository.Repositories) error {
		missions, err := repos.Missions.ListByScientist(ctx, scientist.ID)
		require.NoError(t, err)
		require.Len(t, missions, 1)
		assert.Equal(t, "Rogue Planet X", missions[0].Planet.Name)
		return nil
	})
	require.NoError(t, err)

	err = store.Write(ctx, func(repos *repository.Repositories) error {
		return repos.Scientists.Delete(ctx, scientist.ID)
	})
	require.NoError(t, err)

	err = store.Read(ctx, func(repos *repository.Repositories) error {
		missions, err := repos.Missions.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, missions)
		return nil
	})
	require.NoError(t, err)
}

func TestPgStoreRollsBackOnForeignKeyViolation(t *testing.T) {
	store, pool := setupPgStore(t)
	ctx := context.Background()

	err := store.Write(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Scientists.Create(ctx, "Vera Rubin", "Astronomy"); err != nil {
			return err
		}
		_, err := repos.Missions.Create(ctx, "Nowhere", 1, 999)
		return err
	})

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, pgerrcode.ForeignKeyViolation, pgErr.Code)
	assert.Equal(t, "missions_planet_id_fkey", pgErr.ConstraintName)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM scientists").Scan(&count))
	assert.Zero(t, count)
}

func TestPgStoreNotFound(t *testing.T) {
	store, _ := setupPgStore(t)
	ctx := context.Background()

	err := store.Read(ctx, func(repos *repository.Repositories) error {
		_, err := repos.Scientists.Get(ctx, 42)
		return err
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = store.Write(ctx, func(repos *repository.Repositories) error {
		return repos.Scientists.Delete(ctx, 42)
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
