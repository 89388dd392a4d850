package service

import (
	"context"
	"math"

	"opslink/internal/domain"
	"opslink/internal/quota"
	"opslink/internal/telemetry"
)

// StatsService aggregates usage and telemetry into dashboard numbers.
type StatsService interface {
	ProcessingStats(ctx context.Context, userID string) (*domain.ProcessingStats, error)
}

type statsService struct {
	guard      *quota.Guard
	recorder   *telemetry.Recorder
	periodDays int
}

// NewStatsService creates a StatsService.
func NewStatsService(guard *quota.Guard, recorder *telemetry.Recorder, periodDays int) StatsService {
	if periodDays <= 0 {
		periodDays = 30
	}
	return &statsService{guard: guard, recorder: recorder, periodDays: periodDays}
}

func (s *statsService) ProcessingStats(ctx context.Context, userID string) (*domain.ProcessingStats, error) {
	rec, err := s.guard.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}

	perDay := float64(rec.CurrentCount) / float64(s.periodDays)
	return &domain.ProcessingStats{
		TotalProcessed:  rec.CurrentCount,
		ThisMonth:       rec.CurrentCount,
		AveragePerDay:   math.Round(perDay*10) / 10,
		SuccessRate:     math.Round(s.recorder.SuccessRate(telemetry.OpExtraction)*100) / 100,
		AvgProcessingMS: float64(s.recorder.AverageDuration(telemetry.OpExtraction).Milliseconds()),
	}, nil
}
