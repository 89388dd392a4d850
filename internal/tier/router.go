// Package tier maps subscription plans to backend execution strategies and
// runs them.
package tier

import (
	"opslink/internal/domain"
)

// StrategyFor returns the execution strategy declared by a plan. The mapping
// is fixed at configuration time; an unknown plan name is reported rather
// than coerced to a default.
func StrategyFor(name domain.PlanName) (domain.ExecutionStrategy, error) {
	plan, ok := domain.PlanByName(name)
	if !ok {
		return "", domain.ErrUnknownPlan
	}
	return plan.Strategy, nil
}
