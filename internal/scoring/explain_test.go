package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"altscore/internal/features"
)

// tableRanker returns fixed percentiles per feature.
type tableRanker map[string]float64

func (r tableRanker) Rank(feature string, _ float64) (float64, bool) {
	pct, ok := r[feature]
	return pct, ok
}

func TestSummarizeLowRiskReasons(t *testing.T) {
	e := NewExplainer(tableRanker{
		features.ColNetCashFlow:   0.9,
		features.ColTxnVolatility: 0.1,
		features.ColAdROI:         0.8,
	})

	got := e.Summarize(features.Vector{}, 82, TierLow, LoanReadiness{})
	assert.Equal(t, "This business has a Low Risk score driven by strong cash flow, stable transactions, marketing efficiency", got)
}

func TestSummarizeHighRiskReasons(t *testing.T) {
	e := NewExplainer(tableRanker{
		features.ColNetCashFlow:   0.1,
		features.ColTxnVolatility: 0.9,
		features.ColBurnRate:      0.9,
	})

	got := e.Summarize(features.Vector{}, 30, TierHigh, LoanReadiness{})
	assert.Equal(t, "This business has a High Risk score due to weak cash flow, volatile transactions, high burn rate", got)
}

func TestSummarizeFallbackWithoutNotableFeatures(t *testing.T) {
	// Mid-population on everything: no reason fires.
	e := NewExplainer(tableRanker{
		features.ColNetCashFlow:   0.5,
		features.ColTxnVolatility: 0.5,
		features.ColBurnRate:      0.5,
		features.ColAdROI:         0.5,
	})

	got := e.Summarize(features.Vector{}, 55, TierMedium, LoanReadiness{})
	assert.Equal(t, "This business is categorized as Medium Risk based on aggregate risk factors", got)
}

func TestSummarizeWithoutRanker(t *testing.T) {
	e := NewExplainer(nil)
	got := e.Summarize(features.Vector{}, 75, TierLow, LoanReadiness{})
	assert.Equal(t, "This business is categorized as Low Risk based on aggregate risk factors", got)
}

func TestSummarizeCutoffsAreStrict(t *testing.T) {
	// Exactly at the cutoffs: nothing fires.
	e := NewExplainer(tableRanker{
		features.ColNetCashFlow:   0.7,
		features.ColTxnVolatility: 0.3,
		features.ColAdROI:         0.7,
	})

	got := e.Summarize(features.Vector{}, 75, TierLow, LoanReadiness{})
	assert.Equal(t, "This business is categorized as Low Risk based on aggregate risk factors", got)
}

func TestSummarizeLenderPerspective(t *testing.T) {
	e := NewExplainer(nil)

	t.Run("all clauses", func(t *testing.T) {
		got := e.Summarize(features.Vector{}, 72, TierLow, LoanReadiness{
			LoanPurpose:         "Business expansion",
			BusinessAge:         "Over 3 years",
			RepaymentConfidence: "Very confident",
		})
		assert.Equal(t,
			"This business is categorized as Low Risk based on aggregate risk factors. "+
				"[Lender Perspective: Clear intent for business expansion aligns with growth momentum | "+
				"Operational maturity of 3+ years provides a stability premium | "+
				"High repayment confidence is a strong borrower commitment signal]",
			got)
	})

	t.Run("growth intent needs score above 50", func(t *testing.T) {
		got := e.Summarize(features.Vector{}, 50, TierMedium, LoanReadiness{
			LoanPurpose: "Marketing / advertising",
		})
		assert.NotContains(t, got, "growth momentum")
	})

	t.Run("early stage note", func(t *testing.T) {
		got := e.Summarize(features.Vector{}, 40, TierHigh, LoanReadiness{
			BusinessAge: "Less than 6 months",
		})
		assert.Contains(t, got, "[Lender Perspective: Early-stage status suggests a conservative credit approach]")
	})

	t.Run("no readiness answers, no clause", func(t *testing.T) {
		got := e.Summarize(features.Vector{}, 40, TierHigh, LoanReadiness{})
		assert.NotContains(t, got, "Lender Perspective")
	})
}
