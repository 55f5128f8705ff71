package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"altscore/internal/resultcache"
	"altscore/internal/scoring"
	"altscore/internal/scoring/metrics"
	dErrors "altscore/pkg/domain-errors"
	"altscore/pkg/platform/httputil"
	"altscore/pkg/platform/sentinel"
	"altscore/pkg/requestcontext"
)

// Service defines the interface for scoring operations.
type Service interface {
	CreditDecision(ctx context.Context, req scoring.DecisionRequest) (*scoring.DecisionResult, error)
}

// Handler wires scoring endpoints to the decision engine.
type Handler struct {
	service  Service
	cache    resultcache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs a scoring handler. cache may be nil to disable result
// tokens.
func New(service Service, cache resultcache.Cache, cacheTTL time.Duration, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  metrics,
	}
}

// Register mounts scoring endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/credit-decision", h.HandleCreditDecision)
	r.Get("/credit-decision/{token}", h.HandleCachedDecision)
}

// HandleCreditDecision handles POST /credit-decision requests.
func (h *Handler) HandleCreditDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	// Caller identity is optional on this endpoint; anonymous applications
	// score under a nil user.
	userID := requestcontext.UserID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreditDecisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CreditDecision(ctx, req.ToDomain(userID))
	if err != nil {
		h.logger.ErrorContext(ctx, "credit decision failed",
			"request_id", requestID,
			"sme_id", req.parsedBusinessID,
			"error", err,
		)
		h.writeDecisionError(w, req.parsedBusinessID.String(), err)
		return
	}

	resp := FromResult(result)
	h.cacheResult(ctx, resp)

	h.logger.InfoContext(ctx, "credit decision served",
		"request_id", requestID,
		"sme_id", result.SMEID,
		"score", result.CreditScore,
		"tier", result.RiskTier,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleCachedDecision handles GET /credit-decision/{token} requests.
func (h *Handler) HandleCachedDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	if h.cache == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "result cache is disabled"))
		return
	}

	value, err := h.cache.Get(ctx, token)
	if err != nil {
		h.metrics.IncrementCacheLookup("miss")
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no cached result for token"))
			return
		}
		h.logger.ErrorContext(ctx, "result cache lookup failed", "token", token, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "result cache unavailable"))
		return
	}

	h.metrics.IncrementCacheLookup("hit")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

// writeDecisionError renders the scoring error envelope for the three
// pipeline codes; anything else falls through to the shared envelope.
func (h *Handler) writeDecisionError(w http.ResponseWriter, smeID string, err error) {
	code := dErrors.CodeOf(err)
	switch code {
	case dErrors.CodeMissingData, dErrors.CodeFeatureEngineering, dErrors.CodeModelInference:
		httputil.WriteJSON(w, dErrors.ToHTTPStatus(code), FromError(smeID, err))
	default:
		httputil.WriteError(w, err)
	}
}

func (h *Handler) cacheResult(ctx context.Context, resp *DecisionResponse) {
	if h.cache == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode cached result failed", "token", resp.ResultToken, "error", err)
		return
	}
	if err := h.cache.Put(ctx, resp.ResultToken, payload, h.cacheTTL); err != nil {
		h.logger.WarnContext(ctx, "cache result failed", "token", resp.ResultToken, "error", err)
	}
}
