package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
	"github.com/deppfellow/cosmic-api/internal/validation"
)

// ListScientistsRequest has no parameters.
type ListScientistsRequest struct{}

func (r *ListScientistsRequest) Validate() error { return nil }

// CreateScientistRequest is the body of POST /scientists.
type CreateScientistRequest struct {
	Name         string `json:"name" validate:"required"`
	FieldOfStudy string `json:"field_of_study" validate:"required"`
}

func (r *CreateScientistRequest) Validate() error {
	return validation.Struct(r)
}

// ScientistIDRequest addresses /scientists/:id. Ids that match no row are
// reported as 404 by the service, so only the type is checked here.
type ScientistIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *ScientistIDRequest) Validate() error { return nil }

// UpdateScientistRequest overwrites both fields; there is no partial update.
type UpdateScientistRequest struct {
	ID           int64  `param:"id" json:"-"`
	Name         string `json:"name" validate:"required"`
	FieldOfStudy string `json:"field_of_study" validate:"required"`
}

func (r *UpdateScientistRequest) Validate() error {
	return validation.Struct(r)
}

type ScientistHandler struct {
	Handler
	service *service.ScientistService
}

func NewScientistHandler(s *server.Server, scientistService *service.ScientistService) *ScientistHandler {
	return &ScientistHandler{
		Handler: NewHandler(s),
		service: scientistService,
	}
}

// ListScientists returns every scientist without missions.
func (h *ScientistHandler) ListScientists(c echo.Context, _ *ListScientistsRequest) ([]model.Scientist, error) {
	return h.service.List(c.Request().Context())
}

func (h *ScientistHandler) CreateScientist(c echo.Context, req *CreateScientistRequest) (model.Scientist, error) {
	return h.service.Create(c.Request().Context(), req.Name, req.FieldOfStudy)
}

// GetScientist returns the scientist with missions and their planets.
func (h *ScientistHandler) GetScientist(c echo.Context, req *ScientistIDRequest) (model.ScientistDetail, error) {
	return h.service.Get(c.Request().Context(), req.ID)
}

func (h *ScientistHandler) UpdateScientist(c echo.Context, req *UpdateScientistRequest) (model.ScientistDetail, error) {
	return h.service.Update(c.Request().Context(), req.ID, req.Name, req.FieldOfStudy)
}

func (h *ScientistHandler) DeleteScientist(c echo.Context, req *ScientistIDRequest) error {
	return h.service.Delete(c.Request().Context(), req.ID)
}
