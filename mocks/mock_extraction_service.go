package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"opslink/internal/domain"
	"opslink/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Process(ctx context.Context, input service.ProcessInput) (*domain.ExtractionResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResponse), args.Error(1)
}
