//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "altscore/pkg/domain"
	"altscore/pkg/testutil/containers"
)

func TestPostgresStoreAppendAndList(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	store := NewPostgresStore(pool)
	require.NoError(t, store.Migrate(ctx))

	userID := id.NewUserID()
	base := time.Now().UTC().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: base, Client: "Chrome 126.0.0.0 (Windows 10)", UserID: userID, BusinessID: "B001", Action: ActionDecisionMade, ModelVersion: "v1", Score: 71, RiskTier: "Low Risk"},
		{Timestamp: base.Add(time.Second), BusinessID: "B001", Action: ActionDecisionFailed, ErrorCode: "model_inference_error", Detail: "artifact unreadable"},
		{Timestamp: base, BusinessID: "B002", Action: ActionDecisionMade, Score: 44, RiskTier: "High Risk"},
	}
	for _, e := range events {
		require.NoError(t, store.Append(ctx, e))
	}

	got, err := store.ListByBusiness(ctx, "B001")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, ActionDecisionMade, got[0].Action)
	assert.Equal(t, userID, got[0].UserID)
	assert.Equal(t, 71, got[0].Score)
	assert.Equal(t, "Chrome 126.0.0.0 (Windows 10)", got[0].Client)
	assert.Equal(t, ActionDecisionFailed, got[1].Action)
	assert.Equal(t, "model_inference_error", got[1].ErrorCode)

	none, err := store.ListByBusiness(ctx, "B999")
	require.NoError(t, err)
	assert.Empty(t, none)
}
