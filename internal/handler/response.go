package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"opslink/internal/domain"
	"opslink/internal/middleware"
)

// ErrorEnvelope is the public error response shape. Quota denials carry
// remaining/reset metadata so the caller can explain the denial.
type ErrorEnvelope struct {
	Error          string     `json:"error"`
	Code           string     `json:"code"`
	RemainingUsage *int       `json:"remainingUsage,omitempty"`
	ResetDate      *time.Time `json:"resetDate,omitempty"`
	RequestID      string     `json:"requestId,omitempty"`
}

// RespondError sends an error envelope with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorEnvelope{
		Error:     msg,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes. Validation messages are surfaced verbatim; internal faults are not.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingDocument):
		return http.StatusBadRequest, "FILE_MISSING", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "FILE_INVALID_TYPE", err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "FILE_TOO_LARGE", err.Error()
	case errors.Is(err, domain.ErrUnknownPlan):
		return http.StatusBadRequest, "PLAN_INVALID", err.Error()
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, "FILE_PROCESSING_FAILED", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "an internal error occurred"
	}
}

// HandleError maps an orchestration error and sends the appropriate error
// response. This is the single place internal failures become public
// envelopes.
func HandleError(c *gin.Context, err error) {
	var quotaErr *domain.QuotaError
	if errors.As(err, &quotaErr) {
		code := "USAGE_LIMIT_EXCEEDED"
		if errors.Is(quotaErr.Err, domain.ErrPeriodExpired) {
			code = "USAGE_TRIAL_EXPIRED"
		}
		remaining := quotaErr.Remaining
		resetAt := quotaErr.ResetAt
		c.JSON(http.StatusTooManyRequests, ErrorEnvelope{
			Error:          quotaErr.Reason,
			Code:           code,
			RemainingUsage: &remaining,
			ResetDate:      &resetAt,
			RequestID:      middleware.GetRequestID(c),
		})
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.GetRequestID(c), err)
	}
	RespondError(c, status, code, msg)
}
