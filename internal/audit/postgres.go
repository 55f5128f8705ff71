package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	id "altscore/pkg/domain"
)

// PostgresStore persists audit events in a Postgres table. Uses pgx directly
// since the trail is insert-heavy and never updated.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the audit table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audit_events (
			id            BIGSERIAL PRIMARY KEY,
			ts            TIMESTAMPTZ NOT NULL,
			request_id    TEXT NOT NULL DEFAULT '',
			client        TEXT NOT NULL DEFAULT '',
			user_id       TEXT NOT NULL DEFAULT '',
			business_id   TEXT NOT NULL,
			action        TEXT NOT NULL,
			model_version TEXT NOT NULL DEFAULT '',
			score         INT NOT NULL DEFAULT 0,
			risk_tier     TEXT NOT NULL DEFAULT '',
			error_code    TEXT NOT NULL DEFAULT '',
			detail        TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS audit_events_business_idx
			ON audit_events (business_id, ts);
	`)
	if err != nil {
		return fmt.Errorf("migrate audit_events: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_events
			(ts, request_id, client, user_id, business_id, action, model_version, score, risk_tier, error_code, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		event.Timestamp,
		event.RequestID,
		event.Client,
		userIDColumn(event.UserID),
		string(event.BusinessID),
		string(event.Action),
		event.ModelVersion,
		event.Score,
		event.RiskTier,
		event.ErrorCode,
		event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ts, request_id, client, user_id, business_id, action, model_version, score, risk_tier, error_code, detail
		FROM audit_events
		WHERE business_id = $1
		ORDER BY ts`,
		string(businessID),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e         Event
			userRaw   string
			business  string
			actionRaw string
		)
		if err := rows.Scan(&e.Timestamp, &e.RequestID, &e.Client, &userRaw, &business, &actionRaw,
			&e.ModelVersion, &e.Score, &e.RiskTier, &e.ErrorCode, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.BusinessID = id.BusinessID(business)
		e.Action = Action(actionRaw)
		if userRaw != "" {
			if parsed, err := id.ParseUserID(userRaw); err == nil {
				e.UserID = parsed
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func userIDColumn(userID id.UserID) string {
	if userID.IsNil() {
		return ""
	}
	return userID.String()
}
