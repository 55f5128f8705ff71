// Package features defines the canonical feature schema and assembles
// aggregates into the fixed vector the classifier consumes.
package features

import "math"

// Canonical column names. The classifier is trained against these exact
// names; renaming one silently breaks schema alignment.
const (
	ColTxnCount      = "txn_count"
	ColNetCashFlow   = "net_cash_flow"
	ColTxnVolatility = "txn_volatility"
	ColTotalInflow   = "total_inflow"
	ColAvgInflow     = "avg_inflow"
	ColTotalOutflow  = "total_outflow"
	ColAvgOutflow    = "avg_outflow"
	ColBurnRate      = "burn_rate"
	ColAdSpendTotal  = "ad_spend_total"
	ColAdROI         = "ad_roi"
	ColAdCPA         = "ad_cpa"
)

// Columns returns the canonical column order. Callers must not mutate the
// returned slice.
func Columns() []string {
	return []string{
		ColTxnCount,
		ColNetCashFlow,
		ColTxnVolatility,
		ColTotalInflow,
		ColAvgInflow,
		ColTotalOutflow,
		ColAvgOutflow,
		ColBurnRate,
		ColAdSpendTotal,
		ColAdROI,
		ColAdCPA,
	}
}

// Vector is one business's feature vector. Every field is always present;
// absent aggregates fill to zero during assembly.
type Vector struct {
	TxnCount      float64
	NetCashFlow   float64
	TxnVolatility float64
	TotalInflow   float64
	AvgInflow     float64
	TotalOutflow  float64
	AvgOutflow    float64
	BurnRate      float64
	AdSpendTotal  float64
	AdROI         float64
	AdCPA         float64
}

// Get returns the named feature value.
func (v Vector) Get(col string) (float64, bool) {
	switch col {
	case ColTxnCount:
		return v.TxnCount, true
	case ColNetCashFlow:
		return v.NetCashFlow, true
	case ColTxnVolatility:
		return v.TxnVolatility, true
	case ColTotalInflow:
		return v.TotalInflow, true
	case ColAvgInflow:
		return v.AvgInflow, true
	case ColTotalOutflow:
		return v.TotalOutflow, true
	case ColAvgOutflow:
		return v.AvgOutflow, true
	case ColBurnRate:
		return v.BurnRate, true
	case ColAdSpendTotal:
		return v.AdSpendTotal, true
	case ColAdROI:
		return v.AdROI, true
	case ColAdCPA:
		return v.AdCPA, true
	}
	return 0, false
}

// FromMap builds a vector from values keyed by canonical column name.
// Unknown keys are ignored and missing columns stay zero.
func FromMap(m map[string]float64) Vector {
	return Vector{
		TxnCount:      m[ColTxnCount],
		NetCashFlow:   m[ColNetCashFlow],
		TxnVolatility: m[ColTxnVolatility],
		TotalInflow:   m[ColTotalInflow],
		AvgInflow:     m[ColAvgInflow],
		TotalOutflow:  m[ColTotalOutflow],
		AvgOutflow:    m[ColAvgOutflow],
		BurnRate:      m[ColBurnRate],
		AdSpendTotal:  m[ColAdSpendTotal],
		AdROI:         m[ColAdROI],
		AdCPA:         m[ColAdCPA],
	}
}

// Map returns the vector keyed by canonical column name.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(Columns()))
	for _, col := range Columns() {
		val, _ := v.Get(col)
		m[col] = val
	}
	return m
}

// Rounded returns a copy with every value rounded to the given number of
// decimal places, for presentation in decision results.
func (v Vector) Rounded(decimals int) Vector {
	out := v
	scale := math.Pow(10, float64(decimals))
	round := func(f float64) float64 { return math.Round(f*scale) / scale }

	out.TxnCount = round(v.TxnCount)
	out.NetCashFlow = round(v.NetCashFlow)
	out.TxnVolatility = round(v.TxnVolatility)
	out.TotalInflow = round(v.TotalInflow)
	out.AvgInflow = round(v.AvgInflow)
	out.TotalOutflow = round(v.TotalOutflow)
	out.AvgOutflow = round(v.AvgOutflow)
	out.BurnRate = round(v.BurnRate)
	out.AdSpendTotal = round(v.AdSpendTotal)
	out.AdROI = round(v.AdROI)
	out.AdCPA = round(v.AdCPA)
	return out
}

// Row is a schema-aligned feature vector with explicit column identity. The
// classifier boundary consumes Rows so a model never receives values whose
// order it did not declare.
type Row struct {
	Columns []string
	Values  []float64
}

// Row projects the vector onto the canonical column order.
func (v Vector) Row() Row {
	cols := Columns()
	values := make([]float64, len(cols))
	for i, col := range cols {
		values[i], _ = v.Get(col)
	}
	return Row{Columns: cols, Values: values}
}

// Align reindexes the vector to exactly the wanted column set: absent
// expected columns fill with 0 and canonical columns the model does not
// declare are dropped. This guarantees the model never sees a shape mismatch.
func Align(v Vector, want []string) Row {
	values := make([]float64, len(want))
	for i, col := range want {
		if val, ok := v.Get(col); ok {
			values[i] = val
		}
	}
	return Row{Columns: append([]string(nil), want...), Values: values}
}
