package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/cosmic-api/internal/config"
	"github.com/deppfellow/cosmic-api/internal/errs"
	"github.com/deppfellow/cosmic-api/internal/lib/job"
	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository/repositorytest"
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
)

type fakeNotifier struct {
	payloads []job.MissionCreatedPayload
	err      error
}

func (n *fakeNotifier) EnqueueMissionCreated(_ context.Context, payload job.MissionCreatedPayload) error {
	n.payloads = append(n.payloads, payload)
	return n.err
}

func newServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Config: config.Default(), Logger: &logger}
}

func TestNewServicesRequiresStore(t *testing.T) {
	_, err := service.NewServices(newServer(), nil)
	require.Error(t, err)
}

func TestMissionCreateNotifiesAfterCommit(t *testing.T) {
	store := repositorytest.NewStore()
	store.SeedScientist("Vera Rubin", "Astronomy")
	store.SeedPlanet(model.Planet{Name: "Proxima b"})

	notifier := &fakeNotifier{}
	missions := service.NewMissionService(newServer(), store, notifier)

	mission, err := missions.Create(context.Background(), "Flyby", 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), mission.ID)
	assert.Equal(t, []job.MissionCreatedPayload{{
		MissionID:     1,
		MissionName:   "Flyby",
		ScientistName: "Vera Rubin",
		PlanetName:    "Proxima b",
	}}, notifier.payloads)
	assert.Equal(t, 1, store.Commits)
}

func TestMissionCreateSurvivesEnqueueFailure(t *testing.T) {
	store := repositorytest.NewStore()
	store.SeedScientist("Vera Rubin", "Astronomy")
	store.SeedPlanet(model.Planet{Name: "Proxima b"})

	notifier := &fakeNotifier{err: errors.New("redis: connection refused")}
	missions := service.NewMissionService(newServer(), store, notifier)

	_, err := missions.Create(context.Background(), "Flyby", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.MissionCount())
}

func TestMissionCreateDanglingReferenceDoesNotNotify(t *testing.T) {
	store := repositorytest.NewStore()
	store.SeedPlanet(model.Planet{Name: "Proxima b"})

	notifier := &fakeNotifier{}
	missions := service.NewMissionService(newServer(), store, notifier)

	_, err := missions.Create(context.Background(), "Flyby", 7, 1)
	require.Error(t, err)

	assert.Empty(t, notifier.payloads)
	assert.Equal(t, 0, store.MissionCount())
	assert.Equal(t, 1, store.Rollbacks)
}

func TestMissionListNeverNil(t *testing.T) {
	missions := service.NewMissionService(newServer(), repositorytest.NewStore(), nil)

	list, err := missions.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestScientistNotFound(t *testing.T) {
	scientists := service.NewScientistService(newServer(), repositorytest.NewStore())
	ctx := context.Background()

	_, getErr := scientists.Get(ctx, 5)
	_, updateErr := scientists.Update(ctx, 5, "A", "B")
	deleteErr := scientists.Delete(ctx, 5)

	for _, err := range []error{getErr, updateErr, deleteErr} {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Scientist not found", httpErr.Message)
		assert.Equal(t, "SCIENTIST_NOT_FOUND", httpErr.Code)
	}
}

func TestScientistUpdateReturnsMissions(t *testing.T) {
	store := repositorytest.NewStore()
	sc := store.SeedScientist("Vera", "Astronomy")
	planet := store.SeedPlanet(model.Planet{Name: "Proxima b"})
	store.SeedMission("Flyby", sc.ID, planet.ID)

	scientists := service.NewScientistService(newServer(), store)

	detail, err := scientists.Update(context.Background(), sc.ID, "Vera Rubin", "Astrophysics")
	require.NoError(t, err)

	assert.Equal(t, "Vera Rubin", detail.Name)
	require.Len(t, detail.Missions, 1)
	assert.Equal(t, "Proxima b", detail.Missions[0].Planet.Name)
}

func TestPlanetList(t *testing.T) {
	store := repositorytest.NewStore()
	store.SeedPlanet(model.Planet{Name: "Maxxor"})
	store.SeedPlanet(model.Planet{Name: "TauCeti F"})

	planets, err := service.NewPlanetService(newServer(), store).List(context.Background())
	require.NoError(t, err)

	require.Len(t, planets, 2)
	assert.Equal(t, "Maxxor", planets[0].Name)
	assert.Equal(t, "TauCeti F", planets[1].Name)
}
