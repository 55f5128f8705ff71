package handler

import (
	"strings"
	"time"

	"altscore/internal/adspend"
	"altscore/internal/ledger"
	"altscore/internal/scoring"
	id "altscore/pkg/domain"
	dErrors "altscore/pkg/domain-errors"
)

const maxRecords = 10000

// TransactionPayload is one transaction row in the request body.
type TransactionPayload struct {
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Type    string  `json:"type"`
	Channel string  `json:"channel"`
}

// AdSpendPayload is one ad-spend row in the request body.
type AdSpendPayload struct {
	Date        string  `json:"date"`
	Platform    string  `json:"platform"`
	SpendAmount float64 `json:"spend_amount"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
}

// LoanReadinessPayload carries the optional application form answers.
type LoanReadinessPayload struct {
	LoanPurpose         string `json:"loan_purpose"`
	BusinessAge         string `json:"business_age"`
	RepaymentConfidence string `json:"repayment_confidence"`
}

// CreditDecisionRequest is the HTTP request body for POST /credit-decision.
type CreditDecisionRequest struct {
	SMEID         string               `json:"sme_id"`
	Transactions  []TransactionPayload `json:"transactions"`
	AdSpend       []AdSpendPayload     `json:"ad_spend"`
	LoanReadiness LoanReadinessPayload `json:"loan_readiness"`

	// Parsed values (populated by Validate)
	parsedBusinessID   id.BusinessID
	parsedTransactions []ledger.Transaction
	parsedAdSpend      []adspend.Record
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
// An empty transaction list is accepted here; the scoring service owns the
// missing-data decision so the error carries the scoring envelope.
func (r *CreditDecisionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	if len(r.Transactions) > maxRecords {
		return dErrors.Newf(dErrors.CodeValidation, "transactions exceed %d records", maxRecords)
	}
	if len(r.AdSpend) > maxRecords {
		return dErrors.Newf(dErrors.CodeValidation, "ad_spend exceeds %d records", maxRecords)
	}

	r.SMEID = strings.TrimSpace(r.SMEID)
	r.parsedBusinessID = id.ApplicantBusinessID
	if r.SMEID != "" {
		businessID, err := id.ParseBusinessID(r.SMEID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "invalid sme_id")
		}
		r.parsedBusinessID = businessID
	}

	r.parsedTransactions = make([]ledger.Transaction, 0, len(r.Transactions))
	for i, txn := range r.Transactions {
		date, err := parseDate(txn.Date)
		if err != nil {
			return dErrors.Newf(dErrors.CodeValidation, "transactions[%d].date: %v", i, err)
		}
		channel := strings.TrimSpace(txn.Channel)
		if channel == "" {
			channel = ledger.DefaultChannel
		}
		r.parsedTransactions = append(r.parsedTransactions, ledger.Transaction{
			BusinessID: r.parsedBusinessID,
			Date:       date,
			Amount:     txn.Amount,
			Type:       strings.TrimSpace(txn.Type),
			Channel:    channel,
		})
	}

	r.parsedAdSpend = make([]adspend.Record, 0, len(r.AdSpend))
	for i, rec := range r.AdSpend {
		date, err := parseDate(rec.Date)
		if err != nil {
			return dErrors.Newf(dErrors.CodeValidation, "ad_spend[%d].date: %v", i, err)
		}
		if rec.SpendAmount < 0 {
			return dErrors.Newf(dErrors.CodeValidation, "ad_spend[%d].spend_amount must not be negative", i)
		}
		if rec.Clicks < 0 || rec.Conversions < 0 {
			return dErrors.Newf(dErrors.CodeValidation, "ad_spend[%d] clicks and conversions must not be negative", i)
		}
		r.parsedAdSpend = append(r.parsedAdSpend, adspend.Record{
			BusinessID:  r.parsedBusinessID,
			Date:        date,
			Platform:    strings.TrimSpace(rec.Platform),
			SpendAmount: rec.SpendAmount,
			Clicks:      rec.Clicks,
			Conversions: rec.Conversions,
		})
	}

	return nil
}

// ToDomain builds the scoring request for the authenticated caller.
func (r *CreditDecisionRequest) ToDomain(userID id.UserID) scoring.DecisionRequest {
	return scoring.DecisionRequest{
		BusinessID:   r.parsedBusinessID,
		UserID:       userID,
		Transactions: r.parsedTransactions,
		AdSpend:      r.parsedAdSpend,
		LoanReadiness: scoring.LoanReadiness{
			LoanPurpose:         strings.TrimSpace(r.LoanReadiness.LoanPurpose),
			BusinessAge:         strings.TrimSpace(r.LoanReadiness.BusinessAge),
			RepaymentConfidence: strings.TrimSpace(r.LoanReadiness.RepaymentConfidence),
		},
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
