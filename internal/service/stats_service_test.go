package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opslink/internal/domain"
	"opslink/internal/quota"
	"opslink/internal/repository/memory"
	"opslink/internal/service"
	"opslink/internal/telemetry"
)

func TestProcessingStats(t *testing.T) {
	store := memory.NewUsageStore()
	guard := quota.NewGuard(store, 30, domain.PlanStarter)
	recorder := telemetry.NewRecorder(100)

	require.NoError(t, store.Create(context.Background(), &domain.UsageRecord{
		UserID:       "user-1",
		Plan:         domain.PlanProfessional,
		MonthlyLimit: 2000,
		CurrentCount: 60,
		ResetAt:      time.Now().AddDate(0, 0, 30),
	}))
	recorder.Record(telemetry.OpExtraction, 200*time.Millisecond, true)
	recorder.Record(telemetry.OpExtraction, 400*time.Millisecond, true)
	recorder.Record(telemetry.OpExtraction, 300*time.Millisecond, false)

	svc := service.NewStatsService(guard, recorder, 30)
	stats, err := svc.ProcessingStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 60, stats.TotalProcessed)
	assert.Equal(t, 60, stats.ThisMonth)
	assert.Equal(t, 2.0, stats.AveragePerDay)
	assert.InDelta(t, 66.67, stats.SuccessRate, 0.01)
	assert.Equal(t, 300.0, stats.AvgProcessingMS)
}

func TestProcessingStats_FreshUser(t *testing.T) {
	guard := quota.NewGuard(memory.NewUsageStore(), 30, domain.PlanStarter)
	svc := service.NewStatsService(guard, telemetry.NewRecorder(10), 30)

	stats, err := svc.ProcessingStats(context.Background(), "newcomer")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalProcessed)
	assert.Equal(t, 0.0, stats.SuccessRate)
}
