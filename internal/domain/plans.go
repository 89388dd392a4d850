package domain

// Plan is an immutable subscription tier. The set of plans is closed and
// loaded once at process start.
type Plan struct {
	Name              PlanName          `json:"name"`
	Strategy          ExecutionStrategy `json:"strategy"`
	MonthlyLimit      int               `json:"monthlyLimit"`
	AccuracyGuarantee int               `json:"accuracyGuarantee"`
	PriceUSD          int               `json:"price"`
	Features          []string          `json:"features"`
}

var plans = map[PlanName]Plan{
	PlanStarter: {
		Name:              PlanStarter,
		Strategy:          StrategySingle,
		MonthlyLimit:      500,
		AccuracyGuarantee: 85,
		PriceUSD:          49,
		Features: []string{
			"GPT-4V processing only",
			"500 documents/month",
			"85% accuracy guarantee",
			"Email support",
			"Basic analytics",
		},
	},
	PlanProfessional: {
		Name:              PlanProfessional,
		Strategy:          StrategyRouted,
		MonthlyLimit:      2000,
		AccuracyGuarantee: 92,
		PriceUSD:          149,
		Features: []string{
			"Smart AI routing (Claude + GPT-4V)",
			"2,000 documents/month",
			"92% accuracy guarantee",
			"Automatic fallback",
			"Priority support",
			"Advanced analytics",
			"API access",
		},
	},
	PlanBusiness: {
		Name:              PlanBusiness,
		Strategy:          StrategyEnsemble,
		MonthlyLimit:      8000,
		AccuracyGuarantee: 98,
		PriceUSD:          399,
		Features: []string{
			"Ensemble validation (both AIs)",
			"8,000 documents/month",
			"98% accuracy guarantee",
			"Human review queue",
			"Dedicated support",
			"Custom integrations",
			"White-label options",
			"SLA guarantees",
		},
	},
}

// PlanByName looks up a plan by name.
func PlanByName(name PlanName) (Plan, bool) {
	p, ok := plans[name]
	return p, ok
}

// AllPlans returns the plan catalog in ascending price order.
func AllPlans() []Plan {
	return []Plan{plans[PlanStarter], plans[PlanProfessional], plans[PlanBusiness]}
}
