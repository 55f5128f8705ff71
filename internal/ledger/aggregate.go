package ledger

import (
	"math"
	"sort"

	id "altscore/pkg/domain"
	dErrors "altscore/pkg/domain-errors"
)

// DefaultBurnRatePenalty substitutes for outflow/inflow when a business has
// outflows but no revenue at all. The value is a modeling assumption baked
// into the trained classifier; override it only together with retraining.
const DefaultBurnRatePenalty = 10.0

// Aggregator reduces one business's ledger to a Summary.
type Aggregator struct {
	burnRatePenalty float64
}

// NewAggregator builds an aggregator with the given no-revenue penalty.
// Pass DefaultBurnRatePenalty unless configuration overrides it.
func NewAggregator(burnRatePenalty float64) *Aggregator {
	return &Aggregator{burnRatePenalty: burnRatePenalty}
}

// Aggregate reduces the transactions of exactly one business into summary
// statistics. Input order does not matter. An empty ledger is a validation
// error: a business with no transaction history cannot be scored.
func (a *Aggregator) Aggregate(txns []Transaction) (Summary, error) {
	if len(txns) == 0 {
		return Summary{}, dErrors.New(dErrors.CodeValidation, "transaction ledger is empty")
	}

	s := Summary{
		BusinessID: txns[0].BusinessID,
		TxnCount:   len(txns),
	}

	var inflowCount, outflowCount int
	for _, t := range txns {
		s.NetCashFlow += t.Amount
		switch {
		case t.Amount > 0:
			s.TotalInflow += t.Amount
			inflowCount++
		case t.Amount < 0:
			s.TotalOutflow += -t.Amount
			outflowCount++
		}
	}

	if inflowCount > 0 {
		s.AvgInflow = s.TotalInflow / float64(inflowCount)
	}
	if outflowCount > 0 {
		s.AvgOutflow = s.TotalOutflow / float64(outflowCount)
	}

	s.TxnVolatility = sampleStdDev(txns)

	if s.TotalInflow > 0 {
		s.BurnRate = s.TotalOutflow / s.TotalInflow
	} else {
		s.BurnRate = a.burnRatePenalty
	}

	return s, nil
}

// sampleStdDev computes the sample standard deviation of the signed amounts.
// A single-record ledger has no defined sample deviation; it is normalized
// to 0 so the feature never carries NaN.
func sampleStdDev(txns []Transaction) float64 {
	n := len(txns)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, t := range txns {
		sum += t.Amount
	}
	mean := sum / float64(n)

	var sq float64
	for _, t := range txns {
		d := t.Amount - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// GroupByBusiness splits a mixed ledger into per-business ledgers.
func GroupByBusiness(txns []Transaction) map[id.BusinessID][]Transaction {
	groups := make(map[id.BusinessID][]Transaction)
	for _, t := range txns {
		groups[t.BusinessID] = append(groups[t.BusinessID], t)
	}
	return groups
}

// SortedBusinessIDs returns the group keys in lexical order for
// deterministic batch assembly.
func SortedBusinessIDs(groups map[id.BusinessID][]Transaction) []id.BusinessID {
	ids := make([]id.BusinessID, 0, len(groups))
	for bid := range groups {
		ids = append(ids, bid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
