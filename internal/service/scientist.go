package service

import (
	"context"

	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository"
	"github.com/deppfellow/cosmic-api/internal/server"
)

const (
	scientistNotFoundCode    = "SCIENTIST_NOT_FOUND"
	scientistNotFoundMessage = "Scientist not found"
)

type ScientistService struct {
	server *server.Server
	store  repository.Store
}

func NewScientistService(s *server.Server, store repository.Store) *ScientistService {
	return &ScientistService{server: s, store: store}
}

// List returns every scientist ordered by id.
func (s *ScientistService) List(ctx context.Context) ([]model.Scientist, error) {
	var scientists []model.Scientist
	err := s.store.Read(ctx, func(repos *repository.Repositories) error {
		var err error
		scientists, err = repos.Scientists.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if scientists == nil {
		scientists = []model.Scientist{}
	}
	return scientists, nil
}

// Get returns the scientist with its missions.
func (s *ScientistService) Get(ctx context.Context, id int64) (model.ScientistDetail, error) {
	var detail model.ScientistDetail
	err := s.store.Read(ctx, func(repos *repository.Repositories) error {
		var err error
		detail, err = loadDetail(ctx, repos, id)
		return err
	})
	return detail, err
}

func (s *ScientistService) Create(ctx context.Context, name, fieldOfStudy string) (model.Scientist, error) {
	var scientist model.Scientist
	err := s.store.Write(ctx, func(repos *repository.Repositories) error {
		var err error
		scientist, err = repos.Scientists.Create(ctx, name, fieldOfStudy)
		return err
	})
	if err != nil {
		return model.Scientist{}, err
	}

	s.server.Logger.Info().
		Int64("scientist_id", scientist.ID).
		Msg("scientist created")

	return scientist, nil
}

// Update overwrites both name and field of study and returns the updated
// scientist with its missions.
func (s *ScientistService) Update(ctx context.Context, id int64, name, fieldOfStudy string) (model.ScientistDetail, error) {
	var detail model.ScientistDetail
	err := s.store.Write(ctx, func(repos *repository.Repositories) error {
		_, err := repos.Scientists.Update(ctx, model.Scientist{
			ID:           id,
			Name:         name,
			FieldOfStudy: fieldOfStudy,
		})
		if err != nil {
			return notFound(err, scientistNotFoundCode, scientistNotFoundMessage)
		}

		detail, err = loadDetail(ctx, repos, id)
		return err
	})
	return detail, err
}

// Delete removes the scientist and, through the cascade, its missions.
func (s *ScientistService) Delete(ctx context.Context, id int64) error {
	err := s.store.Write(ctx, func(repos *repository.Repositories) error {
		err := repos.Scientists.Delete(ctx, id)
		return notFound(err, scientistNotFoundCode, scientistNotFoundMessage)
	})
	if err != nil {
		return err
	}

	s.server.Logger.Info().
		Int64("scientist_id", id).
		Msg("scientist deleted")

	return nil
}

func loadDetail(ctx context.Context, repos *repository.Repositories, id int64) (model.ScientistDetail, error) {
	scientist, err := repos.Scientists.Get(ctx, id)
	if err != nil {
		return model.ScientistDetail{}, notFound(err, scientistNotFoundCode, scientistNotFoundMessage)
	}

	missions, err := repos.Missions.ListByScientist(ctx, id)
	if err != nil {
		return model.ScientistDetail{}, err
	}

	return model.NewScientistDetail(scientist, missions), nil
}
