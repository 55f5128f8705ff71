package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	id "altscore/pkg/domain"
	"altscore/pkg/platform/sentinel"
)

// PostgresStore persists assessments in Postgres via database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the assessments table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS assessments (
			id                   UUID PRIMARY KEY,
			user_id              UUID NOT NULL,
			business_id          TEXT NOT NULL,
			score                INT NOT NULL,
			risk_tier            TEXT NOT NULL,
			decision_summary     TEXT NOT NULL,
			probability_repay    DOUBLE PRECISION NOT NULL,
			key_metrics          JSONB NOT NULL DEFAULT '{}',
			model_version        TEXT NOT NULL DEFAULT '',
			loan_purpose         TEXT NOT NULL DEFAULT '',
			business_age         TEXT NOT NULL DEFAULT '',
			repayment_confidence TEXT NOT NULL DEFAULT '',
			created_at           TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS assessments_user_idx
			ON assessments (user_id, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("migrate assessments: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, a Assessment) error {
	metrics, err := json.Marshal(a.KeyMetrics)
	if err != nil {
		return fmt.Errorf("encode key metrics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments
			(id, user_id, business_id, score, risk_tier, decision_summary,
			 probability_repay, key_metrics, model_version,
			 loan_purpose, business_age, repayment_confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID.String(),
		a.UserID.String(),
		a.BusinessID.String(),
		a.Score,
		a.RiskTier,
		a.DecisionSummary,
		a.ProbabilityRepay,
		metrics,
		a.ModelVersion,
		a.LoanPurpose,
		a.BusinessAge,
		a.RepaymentConfidence,
		a.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, assessmentID id.AssessmentID) (Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, business_id, score, risk_tier, decision_summary,
		       probability_repay, key_metrics, model_version,
		       loan_purpose, business_age, repayment_confidence, created_at
		FROM assessments
		WHERE id = $1`,
		assessmentID.String(),
	)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Assessment{}, sentinel.ErrNotFound
	}
	return a, err
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, business_id, score, risk_tier, decision_summary,
		       probability_repay, key_metrics, model_version,
		       loan_purpose, business_age, repayment_confidence, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID.String(),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (Assessment, error) {
	var (
		a          Assessment
		idRaw      string
		userRaw    string
		business   string
		metricsRaw []byte
	)
	err := row.Scan(&idRaw, &userRaw, &business, &a.Score, &a.RiskTier, &a.DecisionSummary,
		&a.ProbabilityRepay, &metricsRaw, &a.ModelVersion,
		&a.LoanPurpose, &a.BusinessAge, &a.RepaymentConfidence, &a.CreatedAt)
	if err != nil {
		return Assessment{}, err
	}

	if a.ID, err = id.ParseAssessmentID(idRaw); err != nil {
		return Assessment{}, fmt.Errorf("parse assessment id: %w", err)
	}
	if a.UserID, err = id.ParseUserID(userRaw); err != nil {
		return Assessment{}, fmt.Errorf("parse user id: %w", err)
	}
	a.BusinessID = id.BusinessID(business)
	if err := json.Unmarshal(metricsRaw, &a.KeyMetrics); err != nil {
		return Assessment{}, fmt.Errorf("decode key metrics: %w", err)
	}
	return a, nil
}
