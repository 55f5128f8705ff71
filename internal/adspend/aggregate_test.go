package adspend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "altscore/pkg/domain"
)

func TestAggregate(t *testing.T) {
	agg := NewAggregator(DefaultAvgConversionValue)

	t.Run("empty input yields zero summary, not an error", func(t *testing.T) {
		s := agg.Aggregate(nil)
		assert.Equal(t, Summary{}, s)
	})

	t.Run("spend with conversions", func(t *testing.T) {
		s := agg.Aggregate([]Record{
			{
				BusinessID:  "SME-001",
				Date:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				SpendAmount: 500,
				Clicks:      50,
				Conversions: 2,
			},
		})

		assert.Equal(t, id.BusinessID("SME-001"), s.BusinessID)
		assert.InDelta(t, 500, s.SpendTotal, 1e-9)
		assert.Equal(t, 50, s.TotalClicks)
		assert.Equal(t, 2, s.TotalConversions)
		assert.InDelta(t, 10000, s.EstimatedRevenue, 1e-9)
		// (2*5000 - 500) / 500
		assert.InDelta(t, 19.0, s.ROI, 1e-9)
		assert.InDelta(t, 250, s.CPA, 1e-9)
	})

	t.Run("zero conversions treats full spend as CPA", func(t *testing.T) {
		s := agg.Aggregate([]Record{
			{BusinessID: "SME-002", SpendAmount: 300, Clicks: 40},
			{BusinessID: "SME-002", SpendAmount: 200, Clicks: 10},
		})

		assert.InDelta(t, 500, s.SpendTotal, 1e-9)
		assert.Zero(t, s.TotalConversions)
		assert.InDelta(t, 500, s.CPA, 1e-9)
		// (0 - 500) / 500
		assert.InDelta(t, -1.0, s.ROI, 1e-9)
	})

	t.Run("zero spend with records keeps ROI at zero", func(t *testing.T) {
		s := agg.Aggregate([]Record{
			{BusinessID: "SME-003", SpendAmount: 0, Conversions: 1},
		})

		assert.Zero(t, s.ROI)
		assert.Zero(t, s.CPA)
		assert.InDelta(t, 5000, s.EstimatedRevenue, 1e-9)
	})

	t.Run("custom conversion value", func(t *testing.T) {
		custom := NewAggregator(100)
		s := custom.Aggregate([]Record{
			{BusinessID: "SME-004", SpendAmount: 50, Conversions: 2},
		})
		assert.InDelta(t, 200, s.EstimatedRevenue, 1e-9)
		assert.InDelta(t, 3.0, s.ROI, 1e-9)
	})
}
