// Package http exposes the transport order use cases as a JSON API on Echo.
// The embedded OpenAPI document describes the API; it validates incoming
// requests and is served at /openapi.json and through the Swagger UI.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/patrickmn/go-cache"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RouterConfig tunes the cross-cutting middleware.
type RouterConfig struct {
	// RateLimit is the sustained number of requests per second per client IP;
	// zero disables rate limiting.
	RateLimit      float64
	RateBurst      int
	IdempotencyTTL time.Duration
}

// DefaultRouterConfig returns the limits used when nothing is configured.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      50,
		RateBurst:      100,
		IdempotencyTTL: 24 * time.Hour,
	}
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter builds the Echo instance with middleware and all routes.
// health may be nil, in which case /health always reports healthy.
func NewRouter(
	ctx context.Context,
	server *Server,
	health Pinger,
	cfg RouterConfig,
	logger *zap.Logger,
) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	registerSwagger(docJSON)

	validateRequests, err := openAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	if cfg.RateLimit > 0 {
		e.Use(RateLimit(NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst, 10*time.Minute)))
	}

	e.GET("/health", func(c echo.Context) error {
		if health != nil {
			if err := health.PingContext(c.Request().Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	idempotency := Idempotency(cache.New(cfg.IdempotencyTTL, time.Hour))

	api := e.Group("/api/v1", validateRequests)
	api.GET("/transport-orders", server.ListTransportOrders)
	api.POST("/transport-orders", server.CreateTransportOrder, idempotency)
	api.GET("/transport-orders/:id", server.GetTransportOrder)
	api.PATCH("/transport-orders/:id", server.UpdateTransportOrder)
	api.PUT("/transport-orders/:id/state", server.ChangeTransportOrderState)
	api.PUT("/transport-orders/:id/problem", server.ReportTransportOrderProblem)
	api.GET("/transport-units/:barcode/startable-orders", server.GetStartableTransportOrders)
	api.POST("/transport-units/:barcode/start-next", server.StartNextTransportOrder, idempotency)

	return e, nil
}
