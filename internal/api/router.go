package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/kzkiosk/kiosk-control/docs"
	"github.com/kzkiosk/kiosk-control/internal/api/handler"
	"github.com/kzkiosk/kiosk-control/internal/api/middleware"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

// Tokens issues and verifies UI master tokens.
type Tokens interface {
	handler.TokenIssuer
	middleware.TokenVerifier
}

// Deps are the services served by the local control API. Mongo and Redis
// are optional and only used by the readiness probe.
type Deps struct {
	Sessions    ports.SessionService
	Permissions ports.PermissionService
	Catalog     ports.CatalogService
	Reports     ports.ReportService
	ShiftPlan   ports.ShiftPlanService
	Tokens      Tokens

	Mongo *mongo.Database
	Redis *redis.Client

	// Registry receives the HTTP metrics. When nil the default Prometheus
	// registry is used.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer = d.Registry
		gatherer = prometheus.Gatherers{d.Registry, prometheus.DefaultGatherer}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "kiosk",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	masterHandler := handler.NewMasterHandler(d.Sessions, d.Tokens)
	settingsHandler := handler.NewSettingsHandler(d.Permissions)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	reportHandler := handler.NewReportHandler(d.Reports, d.ShiftPlan)

	authMiddleware := middleware.Auth(d.Tokens, d.Sessions)
	masterOnly := middleware.MasterOnly(d.Permissions)

	v1 := e.Group("/v1")

	// --- Master session ---
	v1.POST("/master/login", masterHandler.Login)
	v1.POST("/master/logout", masterHandler.Logout)
	v1.GET("/master/status", masterHandler.Status)

	// --- Settings and permissions ---
	v1.GET("/permissions", settingsHandler.Permissions)
	v1.GET("/settings", settingsHandler.Get)
	v1.PUT("/settings", settingsHandler.Put, authMiddleware, masterOnly)

	// --- Catalog ---
	v1.GET("/catalog", catalogHandler.List)
	v1.GET("/catalog/groups", catalogHandler.Groups)
	v1.POST("/catalog/refresh", catalogHandler.Refresh)
	v1.POST("/catalog", catalogHandler.Create, authMiddleware, masterOnly)
	v1.PUT("/catalog/:id", catalogHandler.Update, authMiddleware, masterOnly)

	// --- Reports (master only) ---
	reports := v1.Group("/reports", authMiddleware, masterOnly)
	reports.GET("/preview", reportHandler.Preview)
	reports.GET("/export", reportHandler.Export)
	reports.GET("/shift.csv", reportHandler.ShiftCSV)
	reports.GET("/workers.csv", reportHandler.WorkersCSV)
	reports.POST("/save_to_usb", reportHandler.SaveToUSB)

	v1.POST("/shift-plan/import", reportHandler.ImportShiftPlan, authMiddleware, masterOnly)

	return e
}
