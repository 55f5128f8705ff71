package scoring

import (
	"fmt"
	"strings"

	"altscore/internal/features"
)

// Percentile cutoffs for calling a feature notably strong or weak.
const (
	strongPct = 0.7
	weakPct   = 0.3
)

// Explainer renders a decision summary from the feature vector and the
// business's standing within the reference population.
type Explainer struct {
	ranker Ranker
}

// NewExplainer builds an explainer. A nil ranker degrades to the generic
// tier-only summary.
func NewExplainer(ranker Ranker) *Explainer {
	return &Explainer{ranker: ranker}
}

// Summarize produces the decision summary for one scored business. Output is
// deterministic for a fixed ranker.
func (e *Explainer) Summarize(vec features.Vector, score int, tier RiskTier, readiness LoanReadiness) string {
	summary := e.riskSummary(vec, tier)
	if notes := lenderNotes(score, readiness); len(notes) > 0 {
		summary += ". [Lender Perspective: " + strings.Join(notes, " | ") + "]"
	}
	return summary
}

func (e *Explainer) riskSummary(vec features.Vector, tier RiskTier) string {
	reasons := e.reasons(vec, tier)
	if len(reasons) == 0 {
		return fmt.Sprintf("This business is categorized as %s based on aggregate risk factors", tier)
	}

	connector := "due to"
	if tier == TierLow {
		connector = "driven by"
	}
	return fmt.Sprintf("This business has a %s score %s %s", tier, connector, strings.Join(reasons, ", "))
}

func (e *Explainer) reasons(vec features.Vector, tier RiskTier) []string {
	if e.ranker == nil {
		return nil
	}

	var reasons []string
	add := func(feature string, above bool, cutoff float64, reason string) {
		value, _ := vec.Get(feature)
		pct, ok := e.ranker.Rank(feature, value)
		if !ok {
			return
		}
		if (above && pct > cutoff) || (!above && pct < cutoff) {
			reasons = append(reasons, reason)
		}
	}

	if tier == TierLow {
		add(features.ColNetCashFlow, true, strongPct, "strong cash flow")
		add(features.ColTxnVolatility, false, weakPct, "stable transactions")
		add(features.ColAdROI, true, strongPct, "marketing efficiency")
	} else {
		add(features.ColNetCashFlow, false, weakPct, "weak cash flow")
		add(features.ColTxnVolatility, true, strongPct, "volatile transactions")
		add(features.ColBurnRate, true, strongPct, "high burn rate")
	}
	return reasons
}

// lenderNotes renders the loan-readiness clause. Answers are matched
// verbatim against the application form's options.
func lenderNotes(score int, readiness LoanReadiness) []string {
	var notes []string

	growthPurpose := readiness.LoanPurpose == "Business expansion" ||
		readiness.LoanPurpose == "Marketing / advertising"
	if growthPurpose && score > mediumRiskFloor {
		notes = append(notes, fmt.Sprintf("Clear intent for %s aligns with growth momentum",
			strings.ToLower(readiness.LoanPurpose)))
	}

	switch readiness.BusinessAge {
	case "Over 3 years":
		notes = append(notes, "Operational maturity of 3+ years provides a stability premium")
	case "Less than 6 months":
		notes = append(notes, "Early-stage status suggests a conservative credit approach")
	}

	if readiness.RepaymentConfidence == "Very confident" {
		notes = append(notes, "High repayment confidence is a strong borrower commitment signal")
	}
	return notes
}
