package handler

import (
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one object.
type Handlers struct {
	Root       *RootHandler
	Scientists *ScientistHandler
	Planets    *PlanetHandler
	Missions   *MissionHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:       NewRootHandler(s),
		Scientists: NewScientistHandler(s, services.Scientists),
		Planets:    NewPlanetHandler(s, services.Planets),
		Missions:   NewMissionHandler(s, services.Missions),
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
	}
}
