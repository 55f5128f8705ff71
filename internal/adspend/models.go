// Package adspend aggregates digital advertising spend records into the
// marketing-efficiency statistics the feature schema is built from.
package adspend

import (
	"time"

	id "altscore/pkg/domain"
)

// Record is one dated ad-spend entry. The platform tag is carried for
// traceability but never consumed by scoring.
type Record struct {
	BusinessID  id.BusinessID
	Date        time.Time
	Platform    string
	SpendAmount float64
	Clicks      int
	Conversions int
}

// Summary is the business-level aggregate of ad-spend records. A business
// with no ad activity legitimately aggregates to the zero value.
type Summary struct {
	BusinessID       id.BusinessID
	SpendTotal       float64
	TotalClicks      int
	TotalConversions int
	// EstimatedRevenue is conversions valued at the configured average
	// conversion value; a proxy signal, not observed revenue.
	EstimatedRevenue float64
	ROI              float64
	CPA              float64
}
