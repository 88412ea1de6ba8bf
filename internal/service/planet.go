package service

import (
	"context"

	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository"
	"github.com/deppfellow/cosmic-api/internal/server"
)

type PlanetService struct {
	server *server.Server
	store  repository.Store
}

func NewPlanetService(s *server.Server, store repository.Store) *PlanetService {
	return &PlanetService{server: s, store: store}
}

// List returns every planet ordered by id.
func (s *PlanetService) List(ctx context.Context) ([]model.Planet, error) {
	var planets []model.Planet
	err := s.store.Read(ctx, func(repos *repository.Repositories) error {
		var err error
		planets, err = repos.Planets.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if planets == nil {
		planets = []model.Planet{}
	}
	return planets, nil
}
