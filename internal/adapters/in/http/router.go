package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"distribution/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the settings of the HTTP layer that come from the
// environment.
type RouterConfig struct {
	// JWTSecret signs bearer tokens. Empty disables authentication.
	JWTSecret string
	Logger    *slog.Logger
}

// NewRouter builds the echo instance serving the distribution API, the
// OpenAPI document and its Swagger UI.
func NewRouter(server ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc, isOpsPath)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, api.Document())
	})
	api.RegisterSwagger()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Use(Authenticate(cfg.JWTSecret, isOpsPath))
	e.Use(validate)

	RegisterHandlers(e, server)
	return e, nil
}

func isOpsPath(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/health" || path == "/openapi.json" || strings.HasPrefix(path, "/swagger/")
}
