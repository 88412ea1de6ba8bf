package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/server"
)

type IndexRequest struct{}

func (r *IndexRequest) Validate() error { return nil }

// RootHandler answers GET / with an empty 200.
type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{Handler: NewHandler(s)}
}

func (h *RootHandler) Index(c echo.Context, _ *IndexRequest) error {
	return nil
}
