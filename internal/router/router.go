package router

import (
	"github.com/gin-gonic/gin"

	"opslink/internal/config"
	"opslink/internal/domain"
	"opslink/internal/handler"
	"opslink/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractH *handler.ExtractHandler,
	usageH *handler.UsageHandler,
	planH *handler.PlanHandler,
	healthH *handler.HealthHandler,
	errorsH *handler.ErrorLogHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Identity(cfg.JWT, domain.PlanName(cfg.Usage.DefaultPlan)))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/extract", extractH.Extract)
	v1.GET("/plans", planH.List)
	v1.GET("/health", healthH.Health)

	usage := v1.Group("/usage")
	usage.GET("", usageH.Get)
	usage.GET("/stats", usageH.Stats)
	usage.POST("/plan", usageH.UpdatePlan)
	usage.GET("/export", usageH.Export)

	admin := v1.Group("/admin")
	admin.GET("/errors", errorsH.Recent)

	return r
}
