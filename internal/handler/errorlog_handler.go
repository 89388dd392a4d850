package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opslink/internal/telemetry"
)

// ErrorLogHandler exposes recent failures for support correlation.
type ErrorLogHandler struct {
	errLog *telemetry.ErrorLogger
}

// NewErrorLogHandler creates a new ErrorLogHandler.
func NewErrorLogHandler(errLog *telemetry.ErrorLogger) *ErrorLogHandler {
	return &ErrorLogHandler{errLog: errLog}
}

// Recent handles GET /api/v1/admin/errors?limit=N
func (h *ErrorLogHandler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.errLog.Recent(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"errors": entries, "count": len(entries)})
}
