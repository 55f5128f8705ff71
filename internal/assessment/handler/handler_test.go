package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/assessment"
	id "altscore/pkg/domain"
	"altscore/pkg/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func seedStore(t *testing.T, userID id.UserID, n int) *assessment.MemoryStore {
	t.Helper()
	store := assessment.NewMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, store.Save(context.Background(), assessment.Assessment{
			ID:               id.NewAssessmentID(),
			UserID:           userID,
			BusinessID:       id.ApplicantBusinessID,
			Score:            60 + i,
			RiskTier:         "Medium Risk",
			DecisionSummary:  "This business is categorized as Medium Risk based on aggregate risk factors",
			ProbabilityRepay: 0.6,
			KeyMetrics:       map[string]float64{"net_cash_flow": 1000},
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return store
}

func TestHandleListRequiresAuth(t *testing.T) {
	h := New(assessment.NewMemoryStore(), testLogger())

	req := testutil.NewRequest(t, http.MethodGet, "/assessments")
	rr := testutil.DoRequest(newRouter(h), req)
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestHandleListReturnsNewestFirst(t *testing.T) {
	userID := id.NewUserID()
	h := New(seedStore(t, userID, 3), testLogger())

	req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/assessments"), userID.String())
	rr := testutil.DoRequest(newRouter(h), req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[ListResponse](t, rr)
	require.Len(t, resp.Assessments, 3)
	assert.Equal(t, 62, resp.Assessments[0].CreditScore)
	assert.Equal(t, 60, resp.Assessments[2].CreditScore)
	assert.Equal(t, "New_SME", resp.Assessments[0].SMEID)
}

func TestHandleListHonorsLimit(t *testing.T) {
	userID := id.NewUserID()
	h := New(seedStore(t, userID, 5), testLogger())

	req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/assessments?limit=2"), userID.String())
	rr := testutil.DoRequest(newRouter(h), req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[ListResponse](t, rr)
	assert.Len(t, resp.Assessments, 2)
}

func TestHandleListRejectsBadLimit(t *testing.T) {
	userID := id.NewUserID()
	h := New(seedStore(t, userID, 1), testLogger())
	router := newRouter(h)

	for _, raw := range []string{"0", "-1", "abc"} {
		req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/assessments?limit="+raw), userID.String())
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "validation_error")
	}
}

func TestHandleListEmptyHistory(t *testing.T) {
	h := New(assessment.NewMemoryStore(), testLogger())

	req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/assessments"), id.NewUserID().String())
	rr := testutil.DoRequest(newRouter(h), req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[ListResponse](t, rr)
	assert.Empty(t, resp.Assessments)
}
