package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"opslink/internal/domain"
	"opslink/internal/middleware"
	"opslink/internal/service"
)

// ExtractHandler handles document extraction requests.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// Extract handles POST /api/v1/extract. The document arrives as a multipart
// "file" field; the plan comes from the form or falls back to the caller's
// identity claim.
func (h *ExtractHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingDocument)
		return
	}
	defer func() { _ = file.Close() }()

	payload, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "FILE_MISSING", "could not read uploaded file")
		return
	}

	planName := c.PostForm("plan")
	if planName == "" {
		planName = middleware.GetPlan(c)
	}

	contentType := header.Header.Get("Content-Type")
	doc := domain.Document{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Bytes:       payload,
	}

	resp, err := h.extractionService.Process(c.Request.Context(), service.ProcessInput{
		UserID:    middleware.GetUserID(c),
		PlanName:  domain.PlanName(planName),
		Document:  doc,
		Endpoint:  c.FullPath(),
		RequestID: middleware.GetRequestID(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
