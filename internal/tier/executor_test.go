package tier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"opslink/internal/domain"
	"opslink/internal/port"
	"opslink/internal/tier"
	"opslink/mocks"
)

func testDoc() domain.Document {
	return domain.Document{
		FileName:    "invoice.pdf",
		ContentType: "application/pdf",
		Size:        128,
		Bytes:       []byte("%PDF-1.4"),
	}
}

func backendReturning(name string, confidence float64) *mocks.MockBackend {
	b := new(mocks.MockBackend)
	b.On("Name").Return(name).Maybe()
	b.On("Extract", mock.Anything, mock.Anything).Return(domain.BackendResult{
		Backend:    name,
		Model:      name,
		Success:    true,
		Confidence: confidence,
	})
	return b
}

func TestNewExecutor_RequiresBackends(t *testing.T) {
	_, err := tier.NewExecutor(nil, nil)
	assert.Error(t, err)
}

func TestExecute_SingleUsesPrimary(t *testing.T) {
	primary := backendReturning("gpt4v", 0.9)
	secondary := new(mocks.MockBackend)

	e, err := tier.NewExecutor([]port.Backend{primary, secondary}, tier.NewPolicy("alternate"))
	require.NoError(t, err)

	results, err := e.Execute(context.Background(), domain.StrategySingle, testDoc())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gpt4v", results[0].Backend)
	secondary.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExecute_RoutedAlternates(t *testing.T) {
	primary := backendReturning("gpt4v", 0.9)
	secondary := backendReturning("claude", 0.8)

	e, err := tier.NewExecutor([]port.Backend{primary, secondary}, tier.NewPolicy("alternate"))
	require.NoError(t, err)

	first, err := e.Execute(context.Background(), domain.StrategyRouted, testDoc())
	require.NoError(t, err)
	second, err := e.Execute(context.Background(), domain.StrategyRouted, testDoc())
	require.NoError(t, err)

	assert.Equal(t, "gpt4v", first[0].Backend)
	assert.Equal(t, "claude", second[0].Backend)
}

func TestExecute_EnsembleInvokesAllInOrder(t *testing.T) {
	primary := backendReturning("gpt4v", 0.9)
	secondary := backendReturning("claude", 0.8)

	e, err := tier.NewExecutor([]port.Backend{primary, secondary}, nil)
	require.NoError(t, err)

	results, err := e.Execute(context.Background(), domain.StrategyEnsemble, testDoc())
	require.NoError(t, err)
	require.Len(t, results, 2)
	// results come back in backend order regardless of completion order
	assert.Equal(t, "gpt4v", results[0].Backend)
	assert.Equal(t, "claude", results[1].Backend)
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
}

func TestExecute_UnknownStrategy(t *testing.T) {
	e, err := tier.NewExecutor([]port.Backend{backendReturning("gpt4v", 0.9)}, nil)
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), "cascade", testDoc())
	assert.Error(t, err)
}
