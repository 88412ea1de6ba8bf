package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/middleware"
	"github.com/deppfellow/cosmic-api/internal/server"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

var errNotConnected = errors.New("not connected")

// CheckHealth pings every configured dependency.
//
// The database is required: a failed ping answers 503. Redis only backs
// notifications, so its failure is reported without changing the status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	run := func(name string, ping func(ctx context.Context) error) bool {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		defer cancel()

		checkStart := time.Now()
		err := ping(ctx)
		elapsed := time.Since(checkStart)

		if err != nil {
			response.Checks[name] = CheckResult{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", elapsed).
				Msgf("%s health check failed", name)

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			return false
		}

		response.Checks[name] = CheckResult{
			Status:       "healthy",
			ResponseTime: elapsed.String(),
		}
		logger.Debug().
			Dur("response_time", elapsed).
			Msgf("%s health check passed", name)
		return true
	}

	isHealthy := true

	if cfg.Has("database") {
		isHealthy = run("database", func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNotConnected
			}
			return h.server.DB.Pool.Ping(ctx)
		})
	}

	// DB connection metrics are captured by the nrpgx5 integration.

	if cfg.Has("redis") && h.server.Config.Redis.Enabled() {
		run("redis", func(ctx context.Context) error {
			if h.server.Redis == nil {
				return errNotConnected
			}
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if !isHealthy {
		response.Status = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
