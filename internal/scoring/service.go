package scoring

import (
	"context"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"altscore/internal/adspend"
	"altscore/internal/assessment"
	"altscore/internal/audit"
	"altscore/internal/features"
	"altscore/internal/ledger"
	"altscore/internal/model"
	"altscore/internal/scoring/metrics"
	id "altscore/pkg/domain"
	dErrors "altscore/pkg/domain-errors"
	"altscore/pkg/requestcontext"
)

// Classifier is the model capability the engine scores with. Classes are
// named, never positional.
type Classifier interface {
	PredictProba(row features.Row) (model.Probabilities, error)
	FeatureNames() []string
}

// Ranker reports a feature value's percentile within the reference
// population. Optional; explanations degrade without it.
type Ranker interface {
	Rank(feature string, value float64) (pct float64, ok bool)
}

// Recorder persists issued assessments.
type Recorder interface {
	Save(ctx context.Context, a assessment.Assessment) error
}

// AuditEmitter publishes decision audit events.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the scoring pipeline: aggregate, assemble, predict, explain.
type Service struct {
	classifier Classifier
	ledgerAgg  *ledger.Aggregator
	adAgg      *adspend.Aggregator
	explainer  *Explainer

	recorder     Recorder
	auditor      AuditEmitter
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	modelVersion string
}

// Option configures optional service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRanker enables population-relative explanations.
func WithRanker(ranker Ranker) Option {
	return func(s *Service) { s.explainer = NewExplainer(ranker) }
}

// WithRecorder enables assessment persistence.
func WithRecorder(recorder Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

// WithAuditEmitter enables the decision audit trail.
func WithAuditEmitter(auditor AuditEmitter) Option {
	return func(s *Service) { s.auditor = auditor }
}

// WithModelVersion stamps results with the loaded artifact version.
func WithModelVersion(version string) Option {
	return func(s *Service) { s.modelVersion = version }
}

// NewService wires the scoring pipeline around a classifier.
func NewService(classifier Classifier, ledgerAgg *ledger.Aggregator, adAgg *adspend.Aggregator, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		ledgerAgg:  ledgerAgg,
		adAgg:      adAgg,
		explainer:  NewExplainer(nil),
		auditor:    audit.NopEmitter{},
		logger:     slog.Default(),
		tracer:     otel.Tracer("altscore/scoring"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreditDecision scores one business. Deterministic for a fixed model and
// reference population; no internal retries.
func (s *Service) CreditDecision(ctx context.Context, req DecisionRequest) (*DecisionResult, error) {
	start := time.Now()
	businessID := req.BusinessID
	if businessID == "" {
		businessID = id.ApplicantBusinessID
	}

	ctx, span := s.tracer.Start(ctx, "scoring.credit_decision",
		trace.WithAttributes(attribute.String("business_id", businessID.String())))
	defer span.End()

	if len(req.Transactions) == 0 {
		err := dErrors.New(dErrors.CodeMissingData, "no transaction data available")
		s.failed(ctx, req, businessID, err)
		return nil, err
	}

	vec, err := s.engineerFeatures(ctx, req)
	if err != nil {
		wrapped := dErrors.Wrap(err, dErrors.CodeFeatureEngineering, "feature engineering failed")
		s.failed(ctx, req, businessID, wrapped)
		return nil, wrapped
	}

	pRepay, err := s.predict(ctx, vec)
	if err != nil {
		wrapped := dErrors.Wrap(err, dErrors.CodeModelInference, "model inference failed")
		s.failed(ctx, req, businessID, wrapped)
		return nil, wrapped
	}

	score := ScoreFromProbability(pRepay)
	tier := TierForScore(score)

	explainStart := time.Now()
	summary := s.explainer.Summarize(vec, score, tier, req.LoanReadiness)
	s.metrics.ObserveStageLatency("explain", time.Since(explainStart))

	result := &DecisionResult{
		AssessmentID:     id.NewAssessmentID(),
		SMEID:            businessID,
		Timestamp:        requestcontext.Now(ctx),
		CreditScore:      score,
		RiskTier:         tier,
		DecisionSummary:  summary,
		ProbabilityRepay: math.Round(pRepay*10000) / 10000,
		KeyMetrics:       vec.Rounded(2),
		ModelVersion:     s.modelVersion,
	}

	s.record(ctx, req, result)
	s.emit(ctx, req, audit.Event{
		BusinessID:   businessID,
		Action:       audit.ActionDecisionMade,
		ModelVersion: s.modelVersion,
		Score:        score,
		RiskTier:     string(tier),
	})

	s.metrics.IncrementDecision(string(tier))
	s.metrics.ObserveDecisionLatency(time.Since(start))
	s.logger.InfoContext(ctx, "credit decision issued",
		"business_id", businessID,
		"score", score,
		"tier", tier,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// engineerFeatures aggregates both evidence sources in parallel and assembles
// the aligned feature row's vector.
func (s *Service) engineerFeatures(ctx context.Context, req DecisionRequest) (features.Vector, error) {
	_, span := s.tracer.Start(ctx, "scoring.engineer_features")
	defer span.End()

	aggregateStart := time.Now()

	var (
		g             errgroup.Group
		ledgerSummary ledger.Summary
		adSummary     adspend.Summary
	)
	g.Go(func() error {
		var err error
		ledgerSummary, err = s.ledgerAgg.Aggregate(req.Transactions)
		return err
	})
	g.Go(func() error {
		adSummary = s.adAgg.Aggregate(req.AdSpend)
		return nil
	})
	if err := g.Wait(); err != nil {
		return features.Vector{}, err
	}
	s.metrics.ObserveStageLatency("aggregate", time.Since(aggregateStart))

	return features.Assemble(ledgerSummary, adSummary), nil
}

// predict aligns the vector to the classifier's declared schema and returns
// the repayment probability.
func (s *Service) predict(ctx context.Context, vec features.Vector) (float64, error) {
	_, span := s.tracer.Start(ctx, "scoring.predict")
	defer span.End()

	predictStart := time.Now()
	defer func() { s.metrics.ObserveStageLatency("predict", time.Since(predictStart)) }()

	want := s.classifier.FeatureNames()
	var row features.Row
	if len(want) == 0 {
		row = vec.Row()
	} else {
		row = features.Align(vec, want)
	}

	probs, err := s.classifier.PredictProba(row)
	if err != nil {
		return 0, err
	}
	return probs.Of(model.ClassRepaid)
}

// failed records a failure on every observability surface before the error
// returns to the caller.
func (s *Service) failed(ctx context.Context, req DecisionRequest, businessID id.BusinessID, err error) {
	code := dErrors.CodeOf(err)
	s.metrics.IncrementError(string(code))
	s.emit(ctx, req, audit.Event{
		BusinessID:   businessID,
		Action:       audit.ActionDecisionFailed,
		ModelVersion: s.modelVersion,
		ErrorCode:    string(code),
		Detail:       dErrors.DescriptionOf(err),
	})
	s.logger.ErrorContext(ctx, "credit decision failed",
		"business_id", businessID,
		"code", code,
		"error", err,
	)
}

// record persists the assessment. Persistence problems degrade history, not
// the decision; the result still returns.
func (s *Service) record(ctx context.Context, req DecisionRequest, result *DecisionResult) {
	if s.recorder == nil {
		return
	}
	a := assessment.Assessment{
		ID:                  result.AssessmentID,
		UserID:              req.UserID,
		BusinessID:          result.SMEID,
		Score:               result.CreditScore,
		RiskTier:            string(result.RiskTier),
		DecisionSummary:     result.DecisionSummary,
		ProbabilityRepay:    result.ProbabilityRepay,
		KeyMetrics:          result.KeyMetrics.Map(),
		ModelVersion:        result.ModelVersion,
		LoanPurpose:         req.LoanReadiness.LoanPurpose,
		BusinessAge:         req.LoanReadiness.BusinessAge,
		RepaymentConfidence: req.LoanReadiness.RepaymentConfidence,
		CreatedAt:           result.Timestamp,
	}
	if err := s.recorder.Save(ctx, a); err != nil {
		s.logger.ErrorContext(ctx, "assessment save failed",
			"assessment_id", result.AssessmentID,
			"business_id", result.SMEID,
			"error", err,
		)
	}
}

func (s *Service) emit(ctx context.Context, req DecisionRequest, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	event.UserID = req.UserID
	event.Client = requestcontext.ClientInfo(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "business_id", event.BusinessID, "error", err)
	}
}
