package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pixelforge/image-studio/docs"
	"github.com/pixelforge/image-studio/internal/infrastructure/http/handlers"
)

// RegisterOps mounts the operational endpoints: probes, Prometheus
// exposition and the API docs. None of them require a profile.
func RegisterOps(e *echo.Echo, checks map[string]handlers.CheckFunc) {
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(checks)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
