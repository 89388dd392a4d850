package consensus

import (
	"opslink/internal/domain"
)

// Thresholds for payload selection and qualitative tiers.
const (
	highThreshold   = 0.8
	mediumThreshold = 0.6
)

// DefaultAgreementBonus is the flat boost applied when more than one backend
// succeeds. It is a tunable stand-in for true field-level similarity scoring.
const DefaultAgreementBonus = 0.1

// Engine reconciles one or more backend results into a single
// confidence-scored outcome. Reconcile is a pure function of its input.
type Engine struct {
	bonus float64
}

// NewEngine creates an Engine with the given agreement bonus.
func NewEngine(bonus float64) *Engine {
	return &Engine{bonus: bonus}
}

// Reconcile computes the agreement score, selects or composes the payload,
// and assigns the qualitative tier.
func (e *Engine) Reconcile(results []domain.BackendResult) domain.ConsensusOutcome {
	successful := make([]domain.BackendResult, 0, len(results))
	for _, r := range results {
		if r.Success {
			successful = append(successful, r)
		}
	}

	if len(successful) == 0 {
		return domain.ConsensusOutcome{
			Success: false,
			Tier:    domain.ConfidenceLow,
			Error:   mostInformativeFailure(results),
		}
	}

	// A single surviving result stands on its own confidence; corroboration
	// bonuses require at least two independent successes.
	if len(successful) == 1 {
		only := successful[0]
		return outcome(only.Confidence, only.Confidence, only.Fields, only.Backend)
	}

	var sum float64
	for _, r := range successful {
		sum += r.Confidence
	}
	mean := sum / float64(len(successful))

	score := mean + e.bonus
	if score > 1.0 {
		score = 1.0
	}

	if score > highThreshold {
		best := successful[0]
		for _, r := range successful[1:] {
			if r.Confidence > best.Confidence {
				best = r
			}
		}
		return outcome(score, mean, best.Fields, best.Backend)
	}

	// Medium or low agreement: expose every backend's raw output so
	// downstream consumers can see the disagreement.
	composite := domain.Fields{"consensus": score}
	for _, r := range successful {
		composite[r.Backend] = r.Fields
	}
	if score <= mediumThreshold {
		composite["requiresReview"] = true
	}
	return outcome(score, mean, composite, "")
}

func outcome(score, meanConfidence float64, fields domain.Fields, chosen string) domain.ConsensusOutcome {
	return domain.ConsensusOutcome{
		Success:        true,
		AgreementScore: score,
		Tier:           tierFor(score, meanConfidence),
		Fields:         fields,
		RequiresReview: score <= mediumThreshold,
		ChosenBackend:  chosen,
	}
}

func tierFor(score, meanConfidence float64) domain.ConfidenceTier {
	switch {
	case score > highThreshold && meanConfidence > highThreshold:
		return domain.ConfidenceHigh
	case score > mediumThreshold && meanConfidence > mediumThreshold:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// mostInformativeFailure picks the longest non-empty failure reason, on the
// theory that provider errors carry more detail than generic timeouts.
func mostInformativeFailure(results []domain.BackendResult) string {
	reason := "all extraction backends failed"
	longest := 0
	for _, r := range results {
		if !r.Success && len(r.Error) > longest {
			longest = len(r.Error)
			reason = r.Error
		}
	}
	return reason
}
