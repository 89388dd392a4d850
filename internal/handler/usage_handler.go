package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"opslink/internal/domain"
	"opslink/internal/middleware"
	"opslink/internal/quota"
	"opslink/internal/service"
	"opslink/internal/xlsxexport"
)

// UsageHandler exposes quota standing, processing stats, plan changes, and
// the usage report export.
type UsageHandler struct {
	guard        *quota.Guard
	statsService service.StatsService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(guard *quota.Guard, statsService service.StatsService) *UsageHandler {
	return &UsageHandler{guard: guard, statsService: statsService}
}

// Get handles GET /api/v1/usage
func (h *UsageHandler) Get(c *gin.Context) {
	rec, err := h.guard.Usage(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":         rec.UserID,
		"plan":           rec.Plan,
		"monthlyLimit":   rec.MonthlyLimit,
		"currentUsage":   rec.CurrentCount,
		"remainingUsage": rec.Remaining(),
		"resetDate":      rec.ResetAt,
	})
}

// Stats handles GET /api/v1/usage/stats
func (h *UsageHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.ProcessingStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type updatePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// UpdatePlan handles POST /api/v1/usage/plan. Remaining allowance is
// recomputed against the new limit; the consumed count is preserved.
func (h *UsageHandler) UpdatePlan(c *gin.Context) {
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "plan field is required")
		return
	}

	rec, err := h.guard.UpdatePlan(c.Request.Context(), middleware.GetUserID(c), domain.PlanName(req.Plan))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plan":           rec.Plan,
		"monthlyLimit":   rec.MonthlyLimit,
		"currentUsage":   rec.CurrentCount,
		"remainingUsage": rec.Remaining(),
		"resetDate":      rec.ResetAt,
	})
}

// Export handles GET /api/v1/usage/export, returning an xlsx usage report.
func (h *UsageHandler) Export(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	rec, err := h.guard.Usage(ctx, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	stats, err := h.statsService.ProcessingStats(ctx, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.WriteUsageReport(&buf, rec, stats); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("usage-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
