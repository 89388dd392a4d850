package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"opslink/internal/domain"
)

// MockErrorLogStore is a mock implementation of port.ErrorLogStore.
type MockErrorLogStore struct {
	mock.Mock
}

func (m *MockErrorLogStore) Append(ctx context.Context, entry *domain.ErrorLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockErrorLogStore) Recent(ctx context.Context, limit int) ([]domain.ErrorLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ErrorLogEntry), args.Error(1)
}
