package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/http/handlers"
	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/http/middleware"
	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/telemetry"
)

// RouterConfig contains the handlers and settings for the ops routes.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names the otelgin server spans.
	ServiceName string

	HealthHandler *handlers.HealthHandler
	StatusHandler *handlers.StatusHandler
}

// SetupRouter configures middleware and the /-/ routes on the Gin engine.
// Middleware order:
//  1. Recovery
//  2. Request ID
//  3. OpenTelemetry tracing and metrics
//  4. Logging (probes and metrics scrapes skipped)
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(middleware.Recovery(cfg.Logger), middleware.RequestID())
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger, "/-/live", "/-/ready", "/-/metrics"))

	ops := engine.Group("/-")

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(ops)
	}

	if cfg.StatusHandler != nil {
		cfg.StatusHandler.RegisterStatusRoutes(ops)
	}

	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, domain.NewNotFoundError("route", c.Request.URL.Path))
	})
}
