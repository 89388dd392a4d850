package port

import (
	"context"

	"opslink/internal/domain"
)

// ErrorLogStore records failures for later support correlation.
type ErrorLogStore interface {
	Append(ctx context.Context, entry *domain.ErrorLogEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ErrorLogEntry, error)
}
