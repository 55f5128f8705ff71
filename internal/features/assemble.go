package features

import (
	id "altscore/pkg/domain"
	dErrors "altscore/pkg/domain-errors"

	"altscore/internal/adspend"
	"altscore/internal/ledger"
)

// Assemble merges the two aggregates into one feature vector. The join is
// keyed by the transaction side: every scored business must have a
// transaction aggregate, while a zero-valued ad aggregate simply contributes
// zeros.
func Assemble(txn ledger.Summary, ads adspend.Summary) Vector {
	return Vector{
		TxnCount:      float64(txn.TxnCount),
		NetCashFlow:   txn.NetCashFlow,
		TxnVolatility: txn.TxnVolatility,
		TotalInflow:   txn.TotalInflow,
		AvgInflow:     txn.AvgInflow,
		TotalOutflow:  txn.TotalOutflow,
		AvgOutflow:    txn.AvgOutflow,
		BurnRate:      txn.BurnRate,
		AdSpendTotal:  ads.SpendTotal,
		AdROI:         ads.ROI,
		AdCPA:         ads.CPA,
	}
}

// LoanStatus is the terminal state of a historical loan.
type LoanStatus string

const (
	LoanStatusRepaid  LoanStatus = "Repaid"
	LoanStatusDefault LoanStatus = "Default"
)

// LoanOutcome is one historical loan used to derive training labels.
type LoanOutcome struct {
	LoanID     string
	BusinessID id.BusinessID
	Status     LoanStatus
}

// LabelsByBusiness derives the training label per business: 1 (default) if
// ANY of its loans defaulted, else 0. Multiple loans collapse to one
// worst-case label; this is an explicit simplifying policy.
func LabelsByBusiness(loans []LoanOutcome) map[id.BusinessID]int {
	labels := make(map[id.BusinessID]int)
	for _, loan := range loans {
		if loan.Status == LoanStatusDefault {
			labels[loan.BusinessID] = 1
		} else if _, seen := labels[loan.BusinessID]; !seen {
			labels[loan.BusinessID] = 0
		}
	}
	return labels
}

// Example is one labeled row of a training or reference dataset.
type Example struct {
	BusinessID id.BusinessID
	Features   Vector
	IsDefault  int
}

// DatasetBuilder assembles labeled feature matrices for training batches and
// reference populations.
type DatasetBuilder struct {
	ledger *ledger.Aggregator
	ads    *adspend.Aggregator
}

// NewDatasetBuilder wires the two aggregators.
func NewDatasetBuilder(l *ledger.Aggregator, a *adspend.Aggregator) *DatasetBuilder {
	return &DatasetBuilder{ledger: l, ads: a}
}

// Build assembles one labeled example per business that has both a loan
// outcome and a transaction history, in deterministic business-ID order.
// Businesses without ad activity fill the ad features with zeros.
func (b *DatasetBuilder) Build(
	txns []ledger.Transaction,
	ads []adspend.Record,
	loans []LoanOutcome,
) ([]Example, error) {
	if len(loans) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no loan outcomes to label against")
	}

	labels := LabelsByBusiness(loans)
	txnGroups := ledger.GroupByBusiness(txns)
	adGroups := adspend.GroupByBusiness(ads)

	examples := make([]Example, 0, len(labels))
	for _, bid := range ledger.SortedBusinessIDs(txnGroups) {
		label, hasLoan := labels[bid]
		if !hasLoan {
			continue
		}

		txnSummary, err := b.ledger.Aggregate(txnGroups[bid])
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeFeatureEngineering, "aggregate transactions for "+bid.String())
		}
		adSummary := b.ads.Aggregate(adGroups[bid])

		examples = append(examples, Example{
			BusinessID: bid,
			Features:   Assemble(txnSummary, adSummary),
			IsDefault:  label,
		})
	}
	return examples, nil
}
