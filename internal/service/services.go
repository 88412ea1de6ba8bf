// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, runs exactly one unit of work per operation through
// the repository.Store and translates persistence errors it understands
// (like a missing row) into API errors.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/cosmic-api/internal/errs"
	"github.com/deppfellow/cosmic-api/internal/lib/job"
	"github.com/deppfellow/cosmic-api/internal/repository"
	"github.com/deppfellow/cosmic-api/internal/server"
)

// MissionNotifier is told about every committed mission.
type MissionNotifier interface {
	EnqueueMissionCreated(ctx context.Context, payload job.MissionCreatedPayload) error
}

type Services struct {
	Scientists *ScientistService
	Planets    *PlanetService
	Missions   *MissionService
}

// NewServices wires every service to store. The mission notifier is the
// server's job service when background jobs are running.
func NewServices(s *server.Server, store repository.Store) (*Services, error) {
	if store == nil {
		return nil, errors.New("service: nil store")
	}

	var notifier MissionNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Scientists: NewScientistService(s, store),
		Planets:    NewPlanetService(s, store),
		Missions:   NewMissionService(s, store, notifier),
	}, nil
}

// notFound turns repository.ErrNotFound into a 404 with message; other
// errors pass through untouched.
func notFound(err error, code, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError(message, &code)
	}
	return err
}
