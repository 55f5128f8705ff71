// Package audit captures an append-only trail of credit decisions. Emission
// is fail-open: a broken sink degrades the trail, never the decision path.
package audit

import (
	"time"

	id "altscore/pkg/domain"
)

// Action classifies what happened.
type Action string

const (
	ActionDecisionMade   Action = "decision_made"
	ActionDecisionFailed Action = "decision_failed"
	ActionModelLoaded    Action = "model_loaded"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time     `json:"timestamp"`
	RequestID    string        `json:"request_id,omitempty"`
	Client       string        `json:"client,omitempty"`
	UserID       id.UserID     `json:"user_id"`
	BusinessID   id.BusinessID `json:"business_id"`
	Action       Action        `json:"action"`
	ModelVersion string        `json:"model_version,omitempty"`
	Score        int           `json:"score"`
	RiskTier     string        `json:"risk_tier,omitempty"`
	ErrorCode    string        `json:"error_code,omitempty"`
	Detail       string        `json:"detail,omitempty"`
}
