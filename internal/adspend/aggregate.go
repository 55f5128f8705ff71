package adspend

import (
	id "altscore/pkg/domain"
)

// DefaultAvgConversionValue is the assumed monetary value of one conversion,
// used to estimate ad-attributable revenue. Monetary-unit-agnostic; a trained
// model assumption, configurable in lockstep with retraining.
const DefaultAvgConversionValue = 5000.0

// Aggregator reduces one business's ad-spend records to a Summary.
type Aggregator struct {
	avgConversionValue float64
}

// NewAggregator builds an aggregator with the given conversion value.
// Pass DefaultAvgConversionValue unless configuration overrides it.
func NewAggregator(avgConversionValue float64) *Aggregator {
	return &Aggregator{avgConversionValue: avgConversionValue}
}

// Aggregate reduces the ad-spend records of one business. An empty input is
// not an error: zero ad spend is a common, valid state for a small business
// and yields the zero Summary.
func (a *Aggregator) Aggregate(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	s := Summary{BusinessID: records[0].BusinessID}
	for _, r := range records {
		s.SpendTotal += r.SpendAmount
		s.TotalClicks += r.Clicks
		s.TotalConversions += r.Conversions
	}

	s.EstimatedRevenue = float64(s.TotalConversions) * a.avgConversionValue

	if s.SpendTotal > 0 {
		s.ROI = (s.EstimatedRevenue - s.SpendTotal) / s.SpendTotal
	}

	// With zero conversions the cost per acquisition is unbounded; treat the
	// full spend as the cost rather than carrying an infinity.
	if s.TotalConversions > 0 {
		s.CPA = s.SpendTotal / float64(s.TotalConversions)
	} else {
		s.CPA = s.SpendTotal
	}

	return s
}

// GroupByBusiness splits mixed records into per-business groups for batch
// assembly.
func GroupByBusiness(records []Record) map[id.BusinessID][]Record {
	groups := make(map[id.BusinessID][]Record)
	for _, r := range records {
		groups[r.BusinessID] = append(groups[r.BusinessID], r)
	}
	return groups
}
