package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
)

type ListPlanetsRequest struct{}

func (r *ListPlanetsRequest) Validate() error { return nil }

type PlanetHandler struct {
	Handler
	service *service.PlanetService
}

func NewPlanetHandler(s *server.Server, planetService *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		Handler: NewHandler(s),
		service: planetService,
	}
}

func (h *PlanetHandler) ListPlanets(c echo.Context, _ *ListPlanetsRequest) ([]model.Planet, error) {
	return h.service.List(c.Request().Context())
}
