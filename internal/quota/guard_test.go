package quota_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"opslink/internal/domain"
	"opslink/internal/quota"
	"opslink/internal/repository/memory"
	"opslink/mocks"
)

const testUser = "user-1"

func newGuard() *quota.Guard {
	return quota.NewGuard(memory.NewUsageStore(), 30, domain.PlanStarter)
}

func TestCheckAndReserve_UnknownUserGetsDefaultPlan(t *testing.T) {
	g := newGuard()

	dec, err := g.CheckAndReserve(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 500, dec.Remaining)
	assert.True(t, dec.ResetAt.After(time.Now()))

	rec, err := g.Usage(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStarter, rec.Plan)
	assert.Equal(t, 0, rec.CurrentCount)
}

func TestCheckAndReserve_NoSideEffectOnCounter(t *testing.T) {
	g := newGuard()

	first, err := g.CheckAndReserve(context.Background(), testUser)
	require.NoError(t, err)
	second, err := g.CheckAndReserve(context.Background(), testUser)
	require.NoError(t, err)

	assert.Equal(t, first.Remaining, second.Remaining)
}

func TestRecordUsage_DecrementsRemaining(t *testing.T) {
	g := newGuard()
	ctx := context.Background()

	_, err := g.CheckAndReserve(ctx, testUser)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := g.RecordUsage(ctx, testUser)
		require.NoError(t, err)
	}

	dec, err := g.CheckAndReserve(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 497, dec.Remaining)
}

func TestCheckAndReserve_DeniesAtLimit(t *testing.T) {
	store := memory.NewUsageStore()
	g := quota.NewGuard(store, 30, domain.PlanStarter)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.UsageRecord{
		UserID:       testUser,
		Plan:         domain.PlanStarter,
		MonthlyLimit: 500,
		CurrentCount: 500,
		ResetAt:      time.Now().AddDate(0, 0, 10),
	}))

	dec, err := g.CheckAndReserve(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, quota.ReasonLimitReached, dec.Reason)
	assert.Equal(t, 0, dec.Remaining)
}

func TestCheckAndReserve_RollsOverElapsedPeriod(t *testing.T) {
	store := memory.NewUsageStore()
	g := quota.NewGuard(store, 30, domain.PlanStarter)
	ctx := context.Background()

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, store.Create(ctx, &domain.UsageRecord{
		UserID:       testUser,
		Plan:         domain.PlanStarter,
		MonthlyLimit: 500,
		CurrentCount: 500,
		ResetAt:      expired,
	}))

	dec, err := g.CheckAndReserve(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 500, dec.Remaining)
	assert.True(t, dec.ResetAt.After(time.Now()))

	rec, err := store.Get(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CurrentCount)
}

func TestCheckAndReserve_RolloverStoreFailureDenies(t *testing.T) {
	store := new(mocks.MockUsageStore)
	g := quota.NewGuard(store, 30, domain.PlanStarter)
	ctx := context.Background()

	expired := time.Now().Add(-time.Hour)
	store.On("Get", mock.Anything, testUser).Return(&domain.UsageRecord{
		UserID:       testUser,
		Plan:         domain.PlanStarter,
		MonthlyLimit: 500,
		CurrentCount: 12,
		ResetAt:      expired,
	}, nil)
	store.On("Reset", mock.Anything, testUser, mock.Anything).Return(errors.New("connection reset"))

	dec, err := g.CheckAndReserve(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, quota.ReasonPeriodExpired, dec.Reason)
	assert.Equal(t, 0, dec.Remaining)
	assert.Equal(t, expired, dec.ResetAt)
}

func TestUpdatePlan_PreservesConsumedCount(t *testing.T) {
	g := newGuard()
	ctx := context.Background()

	_, err := g.CheckAndReserve(ctx, testUser)
	require.NoError(t, err)
	for i := 0; i < 45; i++ {
		_, err := g.RecordUsage(ctx, testUser)
		require.NoError(t, err)
	}

	rec, err := g.UpdatePlan(ctx, testUser, domain.PlanProfessional)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanProfessional, rec.Plan)
	assert.Equal(t, 2000, rec.MonthlyLimit)
	assert.Equal(t, 45, rec.CurrentCount)
	assert.Equal(t, 1955, rec.Remaining())
}

func TestUpdatePlan_UnknownPlan(t *testing.T) {
	g := newGuard()

	_, err := g.UpdatePlan(context.Background(), testUser, "platinum")
	assert.ErrorIs(t, err, domain.ErrUnknownPlan)
}

func TestUpdatePlan_CreatesRecordForUnknownUser(t *testing.T) {
	g := newGuard()

	rec, err := g.UpdatePlan(context.Background(), "new-user", domain.PlanBusiness)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanBusiness, rec.Plan)
	assert.Equal(t, 8000, rec.MonthlyLimit)
	assert.Equal(t, 0, rec.CurrentCount)
}

func TestRecordUsage_UnknownUser(t *testing.T) {
	g := newGuard()

	_, err := g.RecordUsage(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
