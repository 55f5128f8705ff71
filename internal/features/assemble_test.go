package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/adspend"
	"altscore/internal/ledger"
	id "altscore/pkg/domain"
)

func TestAssemble(t *testing.T) {
	t.Run("merges both aggregates", func(t *testing.T) {
		v := Assemble(
			ledger.Summary{
				TxnCount:     2,
				NetCashFlow:  3000,
				TotalInflow:  5000,
				AvgInflow:    5000,
				TotalOutflow: 2000,
				AvgOutflow:   2000,
				BurnRate:     0.4,
			},
			adspend.Summary{SpendTotal: 500, ROI: 19, CPA: 250},
		)

		assert.InDelta(t, 2, v.TxnCount, 1e-9)
		assert.InDelta(t, 3000, v.NetCashFlow, 1e-9)
		assert.InDelta(t, 0.4, v.BurnRate, 1e-9)
		assert.InDelta(t, 500, v.AdSpendTotal, 1e-9)
		assert.InDelta(t, 19, v.AdROI, 1e-9)
		assert.InDelta(t, 250, v.AdCPA, 1e-9)
	})

	t.Run("absent ad aggregate fills zeros", func(t *testing.T) {
		v := Assemble(ledger.Summary{TxnCount: 1, NetCashFlow: 100}, adspend.Summary{})
		assert.Zero(t, v.AdSpendTotal)
		assert.Zero(t, v.AdROI)
		assert.Zero(t, v.AdCPA)
	})
}

func TestVectorSchema(t *testing.T) {
	t.Run("row follows canonical order", func(t *testing.T) {
		v := Vector{TxnCount: 1, AdCPA: 9}
		row := v.Row()
		require.Equal(t, Columns(), row.Columns)
		assert.InDelta(t, 1, row.Values[0], 1e-9)
		assert.InDelta(t, 9, row.Values[len(row.Values)-1], 1e-9)
	})

	t.Run("every canonical column resolves", func(t *testing.T) {
		var v Vector
		for _, col := range Columns() {
			_, ok := v.Get(col)
			assert.True(t, ok, "column %s", col)
		}
	})

	t.Run("align fills missing and drops extras", func(t *testing.T) {
		v := Vector{NetCashFlow: 42, BurnRate: 0.5}
		row := Align(v, []string{ColBurnRate, "unknown_feature", ColNetCashFlow})

		require.Equal(t, []string{ColBurnRate, "unknown_feature", ColNetCashFlow}, row.Columns)
		assert.InDelta(t, 0.5, row.Values[0], 1e-9)
		assert.Zero(t, row.Values[1])
		assert.InDelta(t, 42, row.Values[2], 1e-9)
	})

	t.Run("rounded truncates presentation noise", func(t *testing.T) {
		v := Vector{TxnVolatility: 1.23456, AdROI: 18.999}
		r := v.Rounded(2)
		assert.InDelta(t, 1.23, r.TxnVolatility, 1e-9)
		assert.InDelta(t, 19.0, r.AdROI, 1e-9)
	})
}

func TestLabelsByBusiness(t *testing.T) {
	labels := LabelsByBusiness([]LoanOutcome{
		{LoanID: "L1", BusinessID: "A", Status: LoanStatusRepaid},
		{LoanID: "L2", BusinessID: "A", Status: LoanStatusDefault},
		{LoanID: "L3", BusinessID: "A", Status: LoanStatusRepaid},
		{LoanID: "L4", BusinessID: "B", Status: LoanStatusRepaid},
	})

	// Any default flags the business, regardless of later repayments.
	assert.Equal(t, 1, labels["A"])
	assert.Equal(t, 0, labels["B"])
}

func TestDatasetBuilder(t *testing.T) {
	builder := NewDatasetBuilder(
		ledger.NewAggregator(ledger.DefaultBurnRatePenalty),
		adspend.NewAggregator(adspend.DefaultAvgConversionValue),
	)

	txns := []ledger.Transaction{
		{BusinessID: "A", Amount: 1000},
		{BusinessID: "A", Amount: -200},
		{BusinessID: "B", Amount: 500},
		{BusinessID: "C", Amount: 50}, // no loan: excluded
	}
	ads := []adspend.Record{
		{BusinessID: "A", SpendAmount: 100, Conversions: 1},
	}
	loans := []LoanOutcome{
		{LoanID: "L1", BusinessID: "A", Status: LoanStatusRepaid},
		{LoanID: "L2", BusinessID: "B", Status: LoanStatusDefault},
	}

	examples, err := builder.Build(txns, ads, loans)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, id.BusinessID("A"), examples[0].BusinessID)
	assert.Equal(t, 0, examples[0].IsDefault)
	assert.InDelta(t, 100, examples[0].Features.AdSpendTotal, 1e-9)

	assert.Equal(t, id.BusinessID("B"), examples[1].BusinessID)
	assert.Equal(t, 1, examples[1].IsDefault)
	assert.Zero(t, examples[1].Features.AdSpendTotal)

	t.Run("no loans is an error", func(t *testing.T) {
		_, err := builder.Build(txns, ads, nil)
		assert.Error(t, err)
	})
}
