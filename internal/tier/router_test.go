package tier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opslink/internal/domain"
	"opslink/internal/tier"
)

func TestStrategyFor_KnownPlans(t *testing.T) {
	cases := []struct {
		plan domain.PlanName
		want domain.ExecutionStrategy
	}{
		{domain.PlanStarter, domain.StrategySingle},
		{domain.PlanProfessional, domain.StrategyRouted},
		{domain.PlanBusiness, domain.StrategyEnsemble},
	}
	for _, tc := range cases {
		got, err := tier.StrategyFor(tc.plan)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestStrategyFor_UnknownPlan(t *testing.T) {
	_, err := tier.StrategyFor("enterprise")
	assert.ErrorIs(t, err, domain.ErrUnknownPlan)
}

func TestStrategyFor_Deterministic(t *testing.T) {
	first, err := tier.StrategyFor(domain.PlanProfessional)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := tier.StrategyFor(domain.PlanProfessional)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNewPolicy_AlternateCycles(t *testing.T) {
	p := tier.NewPolicy("alternate")

	picks := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		picks = append(picks, p.Pick(2))
	}
	assert.Equal(t, []int{0, 1, 0, 1}, picks)
}

func TestNewPolicy_RandomStaysInRange(t *testing.T) {
	p := tier.NewPolicy("random")

	for i := 0; i < 100; i++ {
		got := p.Pick(2)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 2)
	}
}

func TestNewPolicy_UnknownNameFallsBackToAlternate(t *testing.T) {
	p := tier.NewPolicy("weighted")

	assert.Equal(t, 0, p.Pick(3))
	assert.Equal(t, 1, p.Pick(3))
	assert.Equal(t, 2, p.Pick(3))
	assert.Equal(t, 0, p.Pick(3))
}
