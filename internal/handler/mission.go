package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
	"github.com/deppfellow/cosmic-api/internal/validation"
)

type ListMissionsRequest struct{}

func (r *ListMissionsRequest) Validate() error { return nil }

// CreateMissionRequest is the body of POST /missions. Whether the scientist
// and planet exist is left to the foreign keys.
type CreateMissionRequest struct {
	Name        string `json:"name" validate:"required"`
	ScientistID int64  `json:"scientist_id" validate:"required"`
	PlanetID    int64  `json:"planet_id" validate:"required"`
}

func (r *CreateMissionRequest) Validate() error {
	return validation.Struct(r)
}

type MissionHandler struct {
	Handler
	service *service.MissionService
}

func NewMissionHandler(s *server.Server, missionService *service.MissionService) *MissionHandler {
	return &MissionHandler{
		Handler: NewHandler(s),
		service: missionService,
	}
}

func (h *MissionHandler) ListMissions(c echo.Context, _ *ListMissionsRequest) ([]model.Mission, error) {
	return h.service.List(c.Request().Context())
}

func (h *MissionHandler) CreateMission(c echo.Context, req *CreateMissionRequest) (model.Mission, error) {
	return h.service.Create(c.Request().Context(), req.Name, req.ScientistID, req.PlanetID)
}
