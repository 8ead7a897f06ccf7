package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/intellitrack/tracking-simulator/internal/api/docs"
	"github.com/intellitrack/tracking-simulator/internal/api/handler"
	"github.com/intellitrack/tracking-simulator/internal/api/middleware"
	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

// RouterDeps carries what the HTTP layer needs.
type RouterDeps struct {
	Service ports.ShipmentService
	Cities  []domain.City
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(deps.Service)
	simulationHandler := handler.NewSimulationHandler(deps.Service, deps.Cities)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API v1 ---
	v1 := e.Group("/v1")
	v1.GET("/cities", simulationHandler.Cities)

	shipments := v1.Group("/shipments")
	shipments.GET("", shipmentHandler.List)
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("/:tracking_id", shipmentHandler.Get)
	shipments.POST("/:tracking_id/advance", simulationHandler.Advance)
	shipments.GET("/:tracking_id/journey", simulationHandler.Journey)
	shipments.PUT("/:tracking_id/watch", simulationHandler.Watch)
	shipments.DELETE("/:tracking_id/watch", simulationHandler.Unwatch)
	shipments.GET("/:tracking_id/notifications", simulationHandler.Notifications)

	return e
}
