// Package scoring is the decision engine: it turns raw transaction and
// ad-spend records into a credit score, a risk tier, and a human-readable
// summary.
package scoring

import (
	"time"

	"altscore/internal/adspend"
	"altscore/internal/features"
	"altscore/internal/ledger"
	id "altscore/pkg/domain"
)

// RiskTier buckets a credit score for lenders.
type RiskTier string

const (
	TierLow    RiskTier = "Low Risk"
	TierMedium RiskTier = "Medium Risk"
	TierHigh   RiskTier = "High Risk"
	// TierUnknown is only ever attached to error results.
	TierUnknown RiskTier = "Unknown"
)

// LoanReadiness carries the applicant's self-reported readiness answers.
// Presentation-only: it colors the decision summary but never the score.
type LoanReadiness struct {
	LoanPurpose         string
	BusinessAge         string
	RepaymentConfidence string
}

// DecisionRequest is one scoring request for a single business.
type DecisionRequest struct {
	BusinessID    id.BusinessID
	UserID        id.UserID
	Transactions  []ledger.Transaction
	AdSpend       []adspend.Record
	LoanReadiness LoanReadiness
}

// DecisionResult is the issued decision. ProbabilityRepay is rounded to four
// decimal places and KeyMetrics to two; the unrounded values never leave the
// service.
type DecisionResult struct {
	AssessmentID     id.AssessmentID
	SMEID            id.BusinessID
	Timestamp        time.Time
	CreditScore      int
	RiskTier         RiskTier
	DecisionSummary  string
	ProbabilityRepay float64
	KeyMetrics       features.Vector
	ModelVersion     string
}
