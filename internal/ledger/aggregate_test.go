package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "altscore/pkg/domain"
	dErrors "altscore/pkg/domain-errors"
)

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	agg := NewAggregator(DefaultBurnRatePenalty)

	t.Run("empty ledger is a validation error", func(t *testing.T) {
		_, err := agg.Aggregate(nil)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	t.Run("mixed inflows and outflows", func(t *testing.T) {
		s, err := agg.Aggregate([]Transaction{
			{BusinessID: "SME-001", Date: day(1), Amount: 5000, Type: "Sales"},
			{BusinessID: "SME-001", Date: day(2), Amount: -2000, Type: "Expense"},
		})
		require.NoError(t, err)

		assert.Equal(t, id.BusinessID("SME-001"), s.BusinessID)
		assert.Equal(t, 2, s.TxnCount)
		assert.InDelta(t, 3000, s.NetCashFlow, 1e-9)
		assert.InDelta(t, 5000, s.TotalInflow, 1e-9)
		assert.InDelta(t, 5000, s.AvgInflow, 1e-9)
		assert.InDelta(t, 2000, s.TotalOutflow, 1e-9)
		assert.InDelta(t, 2000, s.AvgOutflow, 1e-9)
		assert.InDelta(t, 0.4, s.BurnRate, 1e-9)
		// sample stddev of {5000, -2000}
		assert.InDelta(t, math.Sqrt(2)*3500, s.TxnVolatility, 1e-6)
	})

	t.Run("outflow only gets penalty burn rate", func(t *testing.T) {
		s, err := agg.Aggregate([]Transaction{
			{BusinessID: "SME-002", Date: day(1), Amount: -500, Type: "Expense"},
		})
		require.NoError(t, err)

		assert.InDelta(t, 10.0, s.BurnRate, 1e-9)
		assert.InDelta(t, -500, s.NetCashFlow, 1e-9)
		assert.InDelta(t, 0, s.TotalInflow, 1e-9)
		assert.InDelta(t, 500, s.TotalOutflow, 1e-9)
	})

	t.Run("single record has zero volatility", func(t *testing.T) {
		s, err := agg.Aggregate([]Transaction{
			{BusinessID: "SME-003", Date: day(1), Amount: 1200, Type: "Sales"},
		})
		require.NoError(t, err)
		assert.Zero(t, s.TxnVolatility)
	})

	t.Run("identical amounts have zero volatility", func(t *testing.T) {
		s, err := agg.Aggregate([]Transaction{
			{BusinessID: "SME-004", Date: day(1), Amount: 100},
			{BusinessID: "SME-004", Date: day(2), Amount: 100},
			{BusinessID: "SME-004", Date: day(3), Amount: 100},
		})
		require.NoError(t, err)
		assert.Zero(t, s.TxnVolatility)
	})

	t.Run("inflow only leaves outflow stats at zero", func(t *testing.T) {
		s, err := agg.Aggregate([]Transaction{
			{BusinessID: "SME-005", Date: day(1), Amount: 300},
			{BusinessID: "SME-005", Date: day(2), Amount: 700},
		})
		require.NoError(t, err)
		assert.Zero(t, s.TotalOutflow)
		assert.Zero(t, s.AvgOutflow)
		assert.Zero(t, s.BurnRate)
		assert.InDelta(t, 500, s.AvgInflow, 1e-9)
	})

	t.Run("custom penalty is honored", func(t *testing.T) {
		custom := NewAggregator(25)
		s, err := custom.Aggregate([]Transaction{
			{BusinessID: "SME-006", Date: day(1), Amount: -10},
		})
		require.NoError(t, err)
		assert.InDelta(t, 25, s.BurnRate, 1e-9)
	})
}

func TestGroupByBusiness(t *testing.T) {
	groups := GroupByBusiness([]Transaction{
		{BusinessID: "B", Amount: 1},
		{BusinessID: "A", Amount: 2},
		{BusinessID: "B", Amount: 3},
	})

	require.Len(t, groups, 2)
	assert.Len(t, groups["B"], 2)
	assert.Equal(t, []id.BusinessID{"A", "B"}, SortedBusinessIDs(groups))
}
