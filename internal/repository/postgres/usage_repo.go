package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"opslink/internal/domain"
	"opslink/internal/port"
)

type usageRepo struct {
	db *sqlx.DB
}

// NewUsageRepo creates a PostgreSQL-backed UsageStore.
func NewUsageRepo(db *sqlx.DB) port.UsageStore {
	return &usageRepo{db: db}
}

func (r *usageRepo) Get(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	var rec domain.UsageRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT user_id, plan, monthly_limit, current_count, reset_at, last_used_at
		 FROM usage_records WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("usageRepo.Get: %w", err)
	}
	return &rec, nil
}

func (r *usageRepo) Create(ctx context.Context, rec *domain.UsageRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage_records (user_id, plan, monthly_limit, current_count, reset_at, last_used_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (user_id) DO NOTHING`,
		rec.UserID, rec.Plan, rec.MonthlyLimit, rec.CurrentCount, rec.ResetAt)
	if err != nil {
		return fmt.Errorf("usageRepo.Create: %w", err)
	}
	return nil
}

// Increment is an atomic add so concurrent requests from the same user never
// lose updates.
func (r *usageRepo) Increment(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	var rec domain.UsageRecord
	err := r.db.GetContext(ctx, &rec,
		`UPDATE usage_records
		 SET current_count = current_count + 1, last_used_at = NOW()
		 WHERE user_id = $1
		 RETURNING user_id, plan, monthly_limit, current_count, reset_at, last_used_at`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("usageRepo.Increment: %w", err)
	}
	return &rec, nil
}

func (r *usageRepo) Reset(ctx context.Context, userID string, resetAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE usage_records SET current_count = 0, reset_at = $2 WHERE user_id = $1`,
		userID, resetAt)
	if err != nil {
		return fmt.Errorf("usageRepo.Reset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *usageRepo) UpdatePlan(ctx context.Context, userID string, plan domain.PlanName, limit int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE usage_records SET plan = $2, monthly_limit = $3 WHERE user_id = $1`,
		userID, plan, limit)
	if err != nil {
		return fmt.Errorf("usageRepo.UpdatePlan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
