// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/domain/auth"
	"stockroom/internal/domain/inventory"
	"stockroom/internal/domain/reports"
	"stockroom/internal/infrastructure/http/v1/handlers"
	"stockroom/internal/infrastructure/http/v1/middleware"
	"stockroom/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Inventory serves products and movements
	Inventory *inventory.Service

	// Reports serves chart data
	Reports *reports.Service

	// Auth is the access gate; disabled when no password hash is configured
	Auth *auth.Service

	// DB is pinged by the readiness check
	DB handlers.Pinger

	// Logger for request logging
	Logger *logger.Logger

	// Debug selects gin debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger.WithComponent("http")))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(base, cfg.Auth)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.Auth))

	registerProductRoutes(protected, handlers.NewProductHandler(base, cfg.Inventory))
	registerMovementRoutes(protected, handlers.NewMovementHandler(base, cfg.Inventory))
	registerReportRoutes(protected, handlers.NewReportHandler(base, cfg.Reports))
	registerExportRoutes(protected, handlers.NewExportHandler(base, cfg.Inventory))

	return router
}

func registerProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler) {
	g := rg.Group("/products")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func registerMovementRoutes(rg *gin.RouterGroup, h *handlers.MovementHandler) {
	g := rg.Group("/movements")
	g.GET("", h.List)
	g.POST("", h.Create)
}

func registerReportRoutes(rg *gin.RouterGroup, h *handlers.ReportHandler) {
	g := rg.Group("/reports")
	g.GET("/daily", h.Daily)
	g.GET("/products", h.ByProduct)
}

func registerExportRoutes(rg *gin.RouterGroup, h *handlers.ExportHandler) {
	g := rg.Group("/export")
	g.GET("/products.csv", h.Products)
	g.GET("/movements.csv", h.Movements)
}
