// Package quota enforces the per-user monthly document allowance.
package quota

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"opslink/internal/domain"
	"opslink/internal/port"
)

// Denial reasons surfaced in AdmissionDecision.Reason.
const (
	ReasonLimitReached  = "Monthly limit reached"
	ReasonPeriodExpired = "Trial period expired"
)

// Guard answers admission checks against a UsageStore. Checking and
// recording are deliberately decoupled: a failed extraction must not consume
// quota, so RecordUsage is called only after a successful attempt.
type Guard struct {
	store       port.UsageStore
	periodDays  int
	defaultPlan domain.PlanName
	now         func() time.Time
}

// NewGuard creates a Guard. periodDays controls how far resetAt advances on
// rollover.
func NewGuard(store port.UsageStore, periodDays int, defaultPlan domain.PlanName) *Guard {
	if periodDays <= 0 {
		periodDays = 30
	}
	return &Guard{
		store:       store,
		periodDays:  periodDays,
		defaultPlan: defaultPlan,
		now:         time.Now,
	}
}

// CheckAndReserve decides whether a user may run another extraction. It has
// no side effect on the counter; calling it twice without an intervening
// RecordUsage returns identical remaining counts. An unknown user is treated
// as a fresh user on the default plan, and an elapsed period is rolled over
// before re-checking rather than left permanently denied.
func (g *Guard) CheckAndReserve(ctx context.Context, userID string) (*domain.AdmissionDecision, error) {
	rec, err := g.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := g.now()
	if !rec.ResetAt.After(now) {
		// The period elapsed; roll it over before re-checking. If the
		// rollover cannot be applied the user stays denied with the old
		// reset timestamp rather than being admitted against a stale count.
		resetAt := now.AddDate(0, 0, g.periodDays)
		if err := g.store.Reset(ctx, userID, resetAt); err != nil {
			log.Printf("quota.Guard: rollover failed for %s: %v", userID, err)
			return &domain.AdmissionDecision{
				Allowed:   false,
				Reason:    ReasonPeriodExpired,
				Remaining: 0,
				ResetAt:   rec.ResetAt,
			}, nil
		}
		rec.CurrentCount = 0
		rec.ResetAt = resetAt
	}

	if rec.CurrentCount >= rec.MonthlyLimit {
		return &domain.AdmissionDecision{
			Allowed:   false,
			Reason:    ReasonLimitReached,
			Remaining: 0,
			ResetAt:   rec.ResetAt,
		}, nil
	}

	return &domain.AdmissionDecision{
		Allowed:   true,
		Remaining: rec.Remaining(),
		ResetAt:   rec.ResetAt,
	}, nil
}

// RecordUsage debits one attempt from the user's allowance and returns the
// updated record.
func (g *Guard) RecordUsage(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	rec, err := g.store.Increment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recording usage for %s: %w", userID, err)
	}
	return rec, nil
}

// Usage returns the current record for a user, creating a fresh one for
// unknown users.
func (g *Guard) Usage(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	return g.getOrCreate(ctx, userID)
}

// UpdatePlan moves the user to a new plan. Remaining allowance is recomputed
// against the new limit using the already-consumed count; the count is never
// reset as a side effect of a plan change.
func (g *Guard) UpdatePlan(ctx context.Context, userID string, planName domain.PlanName) (*domain.UsageRecord, error) {
	plan, ok := domain.PlanByName(planName)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}
	if _, err := g.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if err := g.store.UpdatePlan(ctx, userID, plan.Name, plan.MonthlyLimit); err != nil {
		return nil, fmt.Errorf("updating plan for %s: %w", userID, err)
	}
	return g.store.Get(ctx, userID)
}

func (g *Guard) getOrCreate(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	rec, err := g.store.Get(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("loading usage for %s: %w", userID, err)
	}

	plan, ok := domain.PlanByName(g.defaultPlan)
	if !ok {
		plan, _ = domain.PlanByName(domain.PlanStarter)
	}
	rec = &domain.UsageRecord{
		UserID:       userID,
		Plan:         plan.Name,
		MonthlyLimit: plan.MonthlyLimit,
		CurrentCount: 0,
		ResetAt:      g.now().AddDate(0, 0, g.periodDays),
	}
	if err := g.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating usage record for %s: %w", userID, err)
	}
	return rec, nil
}
