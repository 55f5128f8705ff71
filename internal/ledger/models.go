// Package ledger aggregates raw cash-flow records into the per-business
// summary statistics the feature schema is built from.
package ledger

import (
	"time"

	id "altscore/pkg/domain"
)

// DefaultChannel is assumed when a record does not name one.
const DefaultChannel = "Online"

// Transaction is one dated, signed cash-flow record. Positive amounts are
// inflows (sales), negative amounts are outflows. Records are immutable once
// ingested; a slice of them forms one business's ledger for a period.
type Transaction struct {
	BusinessID id.BusinessID
	Date       time.Time
	Amount     float64
	Type       string
	Channel    string
}

// Summary is the business-level aggregate of a transaction ledger.
type Summary struct {
	BusinessID    id.BusinessID
	TxnCount      int
	NetCashFlow   float64
	TxnVolatility float64
	TotalInflow   float64
	AvgInflow     float64
	TotalOutflow  float64
	AvgOutflow    float64
	BurnRate      float64
}
