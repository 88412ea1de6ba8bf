package service

import (
	"context"

	"github.com/deppfellow/cosmic-api/internal/lib/job"
	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository"
	"github.com/deppfellow/cosmic-api/internal/server"
)

type MissionService struct {
	server   *server.Server
	store    repository.Store
	notifier MissionNotifier
}

// NewMissionService builds the service; notifier may be nil.
func NewMissionService(s *server.Server, store repository.Store, notifier MissionNotifier) *MissionService {
	return &MissionService{server: s, store: store, notifier: notifier}
}

// List returns every mission ordered by id.
func (s *MissionService) List(ctx context.Context) ([]model.Mission, error) {
	var missions []model.Mission
	err := s.store.Read(ctx, func(repos *repository.Repositories) error {
		var err error
		missions, err = repos.Missions.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if missions == nil {
		missions = []model.Mission{}
	}
	return missions, nil
}

// Create inserts a mission. The scientist and planet are not checked
// beforehand; a dangling reference fails on the foreign key and the
// transaction rolls back.
func (s *MissionService) Create(ctx context.Context, name string, scientistID, planetID int64) (model.Mission, error) {
	var (
		mission model.Mission
		payload job.MissionCreatedPayload
	)

	err := s.store.Write(ctx, func(repos *repository.Repositories) error {
		var err error
		mission, err = repos.Missions.Create(ctx, name, scientistID, planetID)
		if err != nil {
			return err
		}

		if s.notifier == nil {
			return nil
		}

		scientist, err := repos.Scientists.Get(ctx, scientistID)
		if err != nil {
			return err
		}
		planet, err := repos.Planets.Get(ctx, planetID)
		if err != nil {
			return err
		}

		payload = job.MissionCreatedPayload{
			MissionID:     mission.ID,
			MissionName:   mission.Name,
			ScientistName: scientist.Name,
			PlanetName:    planet.Name,
		}
		return nil
	})
	if err != nil {
		return model.Mission{}, err
	}

	logger := s.server.Logger.With().Int64("mission_id", mission.ID).Logger()
	logger.Info().Msg("mission created")

	// The mission is committed; a failed enqueue only costs the notification.
	if s.notifier != nil {
		if err := s.notifier.EnqueueMissionCreated(ctx, payload); err != nil {
			logger.Error().Err(err).Msg("failed to enqueue mission notification")
		}
	}

	return mission, nil
}
