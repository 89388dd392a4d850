package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"opslink/internal/domain"
)

// MockBackend is a mock implementation of port.Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBackend) Extract(ctx context.Context, doc domain.Document) domain.BackendResult {
	args := m.Called(ctx, doc)
	return args.Get(0).(domain.BackendResult)
}
