package handler

import (
	"time"

	"altscore/internal/scoring"
	dErrors "altscore/pkg/domain-errors"
)

// DecisionResponse is the HTTP response for POST /credit-decision.
type DecisionResponse struct {
	AssessmentID     string             `json:"assessment_id"`
	ResultToken      string             `json:"result_token"`
	SMEID            string             `json:"sme_id"`
	Timestamp        time.Time          `json:"timestamp"`
	CreditScore      int                `json:"credit_score"`
	RiskTier         string             `json:"risk_tier"`
	DecisionSummary  string             `json:"decision_summary"`
	ProbabilityRepay float64            `json:"probability_repay"`
	KeyMetrics       map[string]float64 `json:"key_metrics"`
	ModelVersion     string             `json:"model_version,omitempty"`
}

// FromResult converts a domain DecisionResult to an HTTP response. The result
// token doubles as the assessment ID.
func FromResult(result *scoring.DecisionResult) *DecisionResponse {
	return &DecisionResponse{
		AssessmentID:     result.AssessmentID.String(),
		ResultToken:      result.AssessmentID.String(),
		SMEID:            result.SMEID.String(),
		Timestamp:        result.Timestamp,
		CreditScore:      result.CreditScore,
		RiskTier:         string(result.RiskTier),
		DecisionSummary:  result.DecisionSummary,
		ProbabilityRepay: result.ProbabilityRepay,
		KeyMetrics:       result.KeyMetrics.Map(),
		ModelVersion:     result.ModelVersion,
	}
}

// DecisionErrorResponse is the structured error body for failed decisions:
// the error envelope plus an explicit unknown tier and zero score.
type DecisionErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	SMEID            string `json:"sme_id,omitempty"`
	CreditScore      int    `json:"credit_score"`
	RiskTier         string `json:"risk_tier"`
}

// FromError builds the failed-decision body for one of the scoring codes.
func FromError(smeID string, err error) *DecisionErrorResponse {
	return &DecisionErrorResponse{
		Error:            string(dErrors.CodeOf(err)),
		ErrorDescription: dErrors.DescriptionOf(err),
		SMEID:            smeID,
		CreditScore:      0,
		RiskTier:         string(scoring.TierUnknown),
	}
}
