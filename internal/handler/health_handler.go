package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"opslink/internal/port"
	"opslink/internal/service"
	"opslink/internal/telemetry"
)

// HealthHandler handles liveness, readiness, and the rich health surface.
type HealthHandler struct {
	db       *sqlx.DB // nil when running without postgres
	recorder *telemetry.Recorder
	backends []port.Backend
	maxMB    int64
	started  time.Time
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(db *sqlx.DB, recorder *telemetry.Recorder, backends []port.Backend, maxMB int64) *HealthHandler {
	return &HealthHandler{
		db:       db,
		recorder: recorder,
		backends: backends,
		maxMB:    maxMB,
		started:  time.Now(),
	}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health handles GET /api/v1/health, the aggregate metrics surface.
func (h *HealthHandler) Health(c *gin.Context) {
	services := gin.H{
		"ai_models": "healthy",
		"storage":   "healthy",
	}
	status := "healthy"
	if h.db != nil {
		services["database"] = "healthy"
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			services["database"] = "unhealthy"
			status = "degraded"
		}
	}

	models := gin.H{}
	for _, b := range h.backends {
		models[b.Name()] = "available"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   service.Version,
		"services":  services,
		"metrics": gin.H{
			"totalRequests":         h.recorder.Total(telemetry.OpExtraction),
			"averageProcessingTime": h.recorder.AverageDuration(telemetry.OpExtraction).Milliseconds(),
			"successRate":           h.recorder.SuccessRate(telemetry.OpExtraction),
			"uptimeSeconds":         int64(time.Since(h.started).Seconds()),
		},
		"models": models,
		"limits": gin.H{
			"maxFileSizeMB":    h.maxMB,
			"supportedFormats": []string{"PDF", "JPEG", "PNG", "GIF", "DOC", "DOCX"},
		},
	})
}
