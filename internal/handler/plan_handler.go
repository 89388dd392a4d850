package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opslink/internal/domain"
)

// PlanHandler exposes the fixed plan catalog.
type PlanHandler struct{}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// List handles GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": domain.AllPlans()})
}
