package http

import (
	"context"
	"fmt"
	"net/http"

	"warehouse/api"
	"warehouse/internal/pkg/logger"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const BasePath = "/api/v1"

// RouterConfig holds what the router needs besides the use cases.
type RouterConfig struct {
	JWTSecret []byte
	Logger    *zap.Logger
	// Health reports whether the service can take traffic, e.g. a database ping.
	Health func(ctx context.Context) error
}

// LoadOpenAPI parses and validates the embedded contract.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// NewRouter builds the echo instance serving the REST API, its OpenAPI document and docs UI.
func NewRouter(ctx context.Context, server *Server, cfg RouterConfig) (*echo.Echo, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("jwt secret is required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(logger.EchoMiddleware(log))

	e.GET("/health", func(c echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(c.Request().Context()); err != nil {
				logger.FromContext(c.Request().Context()).Warn("health check failed", zap.Error(err))
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/docs/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))

	server.Register(e.Group(BasePath, ActorMiddleware(cfg.JWTSecret)))
	return e, nil
}
