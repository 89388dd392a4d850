package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"opslink/internal/domain"
)

// MockUsageStore is a mock implementation of port.UsageStore.
type MockUsageStore struct {
	mock.Mock
}

func (m *MockUsageStore) Get(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageRecord), args.Error(1)
}

func (m *MockUsageStore) Create(ctx context.Context, rec *domain.UsageRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockUsageStore) Increment(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageRecord), args.Error(1)
}

func (m *MockUsageStore) Reset(ctx context.Context, userID string, resetAt time.Time) error {
	args := m.Called(ctx, userID, resetAt)
	return args.Error(0)
}

func (m *MockUsageStore) UpdatePlan(ctx context.Context, userID string, plan domain.PlanName, limit int) error {
	args := m.Called(ctx, userID, plan, limit)
	return args.Error(0)
}
