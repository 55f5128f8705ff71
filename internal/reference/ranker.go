// Package reference ranks a business's features against a historical
// population. Rankings feed explanation text only; scoring never depends on
// them, so a missing population degrades summaries rather than failing calls.
package reference

import (
	"sort"

	"altscore/internal/features"
)

// Ranker reports where a value sits within a reference population: the
// fraction of reference rows strictly below it, in [0, 1].
type Ranker interface {
	// Rank returns the percentile rank for the named feature, or ok=false
	// when the feature or the population is unknown.
	Rank(feature string, value float64) (pct float64, ok bool)
}

// Population is an immutable, in-memory reference feature matrix. Values are
// kept sorted per feature so ranking is a binary search. Safe for concurrent
// readers; never mutated after construction.
type Population struct {
	sorted map[string][]float64
	rows   int
}

// NewPopulation builds a population from assembled feature vectors.
func NewPopulation(vectors []features.Vector) *Population {
	p := &Population{
		sorted: make(map[string][]float64, len(features.Columns())),
		rows:   len(vectors),
	}
	for _, col := range features.Columns() {
		values := make([]float64, 0, len(vectors))
		for _, v := range vectors {
			val, _ := v.Get(col)
			values = append(values, val)
		}
		sort.Float64s(values)
		p.sorted[col] = values
	}
	return p
}

// Size returns the number of reference rows.
func (p *Population) Size() int {
	return p.rows
}

// Rank returns the fraction of reference rows strictly less than value.
func (p *Population) Rank(feature string, value float64) (float64, bool) {
	values, ok := p.sorted[feature]
	if !ok || len(values) == 0 {
		return 0, false
	}
	// First index whose element is >= value == count of strictly smaller rows.
	below := sort.SearchFloat64s(values, value)
	return float64(below) / float64(len(values)), true
}
