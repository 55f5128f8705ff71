package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"altscore/internal/assessment"
	dErrors "altscore/pkg/domain-errors"
	"altscore/pkg/platform/httputil"
	"altscore/pkg/requestcontext"
)

const maxListLimit = 200

// Handler wires assessment history endpoints to the store.
type Handler struct {
	store  assessment.Store
	logger *slog.Logger
}

// New constructs an assessment handler.
func New(store assessment.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts assessment endpoints on the router. Callers must wrap the
// group with the auth middleware; every endpoint here requires a user.
func (h *Handler) Register(r chi.Router) {
	r.Get("/assessments", h.HandleList)
}

// HandleList handles GET /assessments requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	assessments, err := h.store.ListByUser(ctx, userID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "assessment listing failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "could not list assessments"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAssessments(assessments))
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return assessment.DefaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, nil
}

// ListResponse is the HTTP response for GET /assessments.
type ListResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

// AssessmentResponse is one assessment in the listing.
type AssessmentResponse struct {
	ID                  string             `json:"id"`
	SMEID               string             `json:"sme_id"`
	CreditScore         int                `json:"credit_score"`
	RiskTier            string             `json:"risk_tier"`
	DecisionSummary     string             `json:"decision_summary"`
	ProbabilityRepay    float64            `json:"probability_repay"`
	KeyMetrics          map[string]float64 `json:"key_metrics"`
	ModelVersion        string             `json:"model_version,omitempty"`
	LoanPurpose         string             `json:"loan_purpose,omitempty"`
	BusinessAge         string             `json:"business_age,omitempty"`
	RepaymentConfidence string             `json:"repayment_confidence,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// FromAssessments converts stored assessments to the wire listing.
func FromAssessments(assessments []assessment.Assessment) ListResponse {
	out := ListResponse{Assessments: make([]AssessmentResponse, 0, len(assessments))}
	for _, a := range assessments {
		out.Assessments = append(out.Assessments, AssessmentResponse{
			ID:                  a.ID.String(),
			SMEID:               a.BusinessID.String(),
			CreditScore:         a.Score,
			RiskTier:            a.RiskTier,
			DecisionSummary:     a.DecisionSummary,
			ProbabilityRepay:    a.ProbabilityRepay,
			KeyMetrics:          a.KeyMetrics,
			ModelVersion:        a.ModelVersion,
			LoanPurpose:         a.LoanPurpose,
			BusinessAge:         a.BusinessAge,
			RepaymentConfidence: a.RepaymentConfidence,
			CreatedAt:           a.CreatedAt,
		})
	}
	return out
}
