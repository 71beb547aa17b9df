package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api/handler"
	"github.com/pixelforge/image-studio/internal/core/ports"
	infrahttp "github.com/pixelforge/image-studio/internal/infrastructure/http"
	"github.com/pixelforge/image-studio/internal/infrastructure/http/handlers"
)

const (
	metricsSubsystem = "http"
	// requestTimeout bounds every route except generation, which waits on
	// the upstream for as long as the request context allows.
	requestTimeout = 30 * time.Second
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Generation ports.GenerationService
	Images     ports.ImageService
	Users      ports.UserService
	Activity   ports.ActivityFeed
	// Checks feed the readiness probe, keyed by dependency name.
	Checks      map[string]handlers.CheckFunc
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Application routes are mounted at both / and /api.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderContentType, "Idempotency-Key"},
	}))
	e.Use(echoprometheus.NewMiddleware(metricsSubsystem))
	e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
		Skipper: isGenerateRoute,
		Timeout: requestTimeout,
	}))

	infrahttp.RegisterOps(e, d.Checks)

	generateHandler := handler.NewGenerateHandler(d.Generation)
	imageHandler := handler.NewImageHandler(d.Images)
	userHandler := handler.NewUserHandler(d.Users)
	activityHandler := handler.NewActivityHandler(d.Activity)

	for _, prefix := range []string{"", "/api"} {
		g := e.Group(prefix)

		g.GET("/generate", generateHandler.Describe)
		g.POST("/generate", generateHandler.Generate)

		g.GET("/images", imageHandler.List)
		g.POST("/images", imageHandler.Create)
		g.PATCH("/images", imageHandler.Update)
		g.DELETE("/images", imageHandler.Delete)

		g.GET("/user", userHandler.Get)
		g.POST("/user", userHandler.Create)
		g.PATCH("/user", userHandler.Update)

		g.GET("/activity", activityHandler.Recent)
	}

	return e
}

func isGenerateRoute(c echo.Context) bool {
	return strings.HasSuffix(c.Path(), "/generate")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
