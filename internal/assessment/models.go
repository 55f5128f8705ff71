// Package assessment persists issued credit decisions so callers can review
// what was decided, when, and by which model version.
package assessment

import (
	"time"

	id "altscore/pkg/domain"
)

// Assessment is one issued credit decision.
type Assessment struct {
	ID               id.AssessmentID
	UserID           id.UserID
	BusinessID       id.BusinessID
	Score            int
	RiskTier         string
	DecisionSummary  string
	ProbabilityRepay float64
	KeyMetrics       map[string]float64
	ModelVersion     string

	// Loan readiness answers captured with the application, verbatim.
	LoanPurpose         string
	BusinessAge         string
	RepaymentConfidence string

	CreatedAt time.Time
}
