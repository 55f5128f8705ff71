package scoring

import "math"

// Tier cutoffs, inclusive on the better side: 70 is Low Risk, 50 is Medium.
const (
	lowRiskFloor    = 70
	mediumRiskFloor = 50
)

// ScoreFromProbability maps a repayment probability onto the 0..100 score
// scale. Truncation, not rounding: 0.699 is a 69.
func ScoreFromProbability(pRepay float64) int {
	score := int(math.Floor(pRepay * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TierForScore buckets a score. Pure domain logic, no I/O.
func TierForScore(score int) RiskTier {
	switch {
	case score >= lowRiskFloor:
		return TierLow
	case score >= mediumRiskFloor:
		return TierMedium
	default:
		return TierHigh
	}
}
