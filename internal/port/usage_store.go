package port

import (
	"context"
	"time"

	"opslink/internal/domain"
)

// UsageStore persists per-user monthly usage counters. Implementations must
// make Increment an atomic add so concurrent requests from one user cannot
// lose updates.
type UsageStore interface {
	// Get returns the record for a user, or domain.ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.UsageRecord, error)
	// Create inserts a fresh record.
	Create(ctx context.Context, rec *domain.UsageRecord) error
	// Increment atomically adds one to the user's count and returns the
	// updated record.
	Increment(ctx context.Context, userID string) (*domain.UsageRecord, error)
	// Reset zeroes the count and sets the next reset timestamp.
	Reset(ctx context.Context, userID string, resetAt time.Time) error
	// UpdatePlan switches the user's plan and monthly limit, leaving the
	// consumed count untouched.
	UpdatePlan(ctx context.Context, userID string, plan domain.PlanName, limit int) error
}
