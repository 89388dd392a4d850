package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"opslink/internal/domain"
	"opslink/internal/port"
)

// Severity levels for logged errors.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ErrorLogger appends structured failure entries to an ErrorLogStore.
type ErrorLogger struct {
	store port.ErrorLogStore
}

// NewErrorLogger creates an ErrorLogger over a store.
func NewErrorLogger(store port.ErrorLogStore) *ErrorLogger {
	return &ErrorLogger{store: store}
}

// Log records one failure. Store errors are logged and swallowed; error
// logging must never fail a request.
func (l *ErrorLogger) Log(ctx context.Context, code, message, severity, endpoint, userID, requestID string) {
	entry := &domain.ErrorLogEntry{
		ID:        uuid.New().String(),
		Code:      code,
		Message:   message,
		Severity:  severity,
		Endpoint:  endpoint,
		UserID:    userID,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}
	if err := l.store.Append(ctx, entry); err != nil {
		log.Printf("[%s] telemetry.ErrorLogger: append failed: %v", requestID, err)
	}
}

// Recent returns up to limit entries, newest first.
func (l *ErrorLogger) Recent(ctx context.Context, limit int) ([]domain.ErrorLogEntry, error) {
	return l.store.Recent(ctx, limit)
}
