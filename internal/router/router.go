// Package router builds the echo instance.
//
// It registers the middleware chain and the global error handler, and maps
// the API and system routes to their handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/handler"
	"github.com/deppfellow/cosmic-api/internal/middleware"
	"github.com/deppfellow/cosmic-api/internal/server"
)

// NewRouter wires middleware, error handling and routes onto a new echo
// instance.
//
// Middleware order matters: the request id and the New Relic transaction
// must exist before the request logger is built, and Recover sits closest
// to the handlers.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	router.Use(middlewares.Global.Recover())

	registerSystemRoutes(router, h, middlewares)
	registerAPIRoutes(router, h)

	return router
}

func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.HandleNoContent(h.Root.Handler, h.Root.Index, http.StatusOK))

	scientists := r.Group("/scientists")
	scientists.GET("", handler.Handle(h.Scientists.Handler, h.Scientists.ListScientists, http.StatusOK))
	scientists.POST("", handler.Handle(h.Scientists.Handler, h.Scientists.CreateScientist, http.StatusOK))
	scientists.GET("/:id", handler.Handle(h.Scientists.Handler, h.Scientists.GetScientist, http.StatusOK))
	scientists.PATCH("/:id", handler.Handle(h.Scientists.Handler, h.Scientists.UpdateScientist, http.StatusAccepted))
	scientists.DELETE("/:id", handler.HandleNoContent(h.Scientists.Handler, h.Scientists.DeleteScientist, http.StatusNoContent))

	r.GET("/planets", handler.Handle(h.Planets.Handler, h.Planets.ListPlanets, http.StatusOK))

	missions := r.Group("/missions")
	missions.GET("", handler.Handle(h.Missions.Handler, h.Missions.ListMissions, http.StatusOK))
	missions.POST("", handler.Handle(h.Missions.Handler, h.Missions.CreateMission, http.StatusCreated))
}
