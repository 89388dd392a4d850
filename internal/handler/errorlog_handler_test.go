package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opslink/internal/domain"
	"opslink/internal/handler"
	"opslink/internal/repository/memory"
	"opslink/internal/telemetry"
)

func errorsRouter(t *testing.T, seed int) *gin.Engine {
	t.Helper()
	store := memory.NewErrorLogStore(100)
	for i := 0; i < seed; i++ {
		require.NoError(t, store.Append(context.Background(), &domain.ErrorLogEntry{
			ID:      fmt.Sprintf("e%d", i),
			Code:    "FILE_PROCESSING_FAILED",
			Message: fmt.Sprintf("failure %d", i),
		}))
	}
	h := handler.NewErrorLogHandler(telemetry.NewErrorLogger(store))
	r := gin.New()
	r.GET("/api/v1/admin/errors", h.Recent)
	return r
}

func TestErrorsRecent_DefaultLimit(t *testing.T) {
	r := errorsRouter(t, 3)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/errors", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Errors []domain.ErrorLogEntry `json:"errors"`
		Count  int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	// newest first
	assert.Equal(t, "e2", resp.Errors[0].ID)
}

func TestErrorsRecent_ExplicitLimit(t *testing.T) {
	r := errorsRouter(t, 5)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/errors?limit=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Errors []domain.ErrorLogEntry `json:"errors"`
		Count  int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "e4", resp.Errors[0].ID)
}
