package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/handler"
	"github.com/deppfellow/cosmic-api/internal/middleware"
)

// registerSystemRoutes registers the endpoints that are not part of the
// API itself: health, metrics, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(m.Metrics.Handler()))

	// openapi.json and openapi.html
	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
