package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus indicates the lifecycle state of an opening balance batch.
//
// State machine: DRAFT --post--> POSTED --reverse--> REVERSED.
// REVERSED is terminal; no other transitions are legal.
type BatchStatus string

const (
	BatchDraft    BatchStatus = "DRAFT"
	BatchPosted   BatchStatus = "POSTED"
	BatchReversed BatchStatus = "REVERSED"
)

// OpeningBalanceBatch groups the opening balance lines that seed account
// balances for one accounting period.
type OpeningBalanceBatch struct {
	BatchID      string      `json:"batchID"`
	CompanyID    string      `json:"companyID"`
	BatchNo      string      `json:"batchNo"` // unique per company
	FiscalYearID string      `json:"fiscalYearID"`
	PeriodID     string      `json:"periodID"`
	Status       BatchStatus `json:"status"`
	PostedAt     *time.Time  `json:"postedAt,omitempty"`
	PostedBy     string      `json:"postedBy,omitempty"`
	ReversedAt   *time.Time  `json:"reversedAt,omitempty"`
	ReversedBy   string      `json:"reversedBy,omitempty"`
	AuditFields
}

// CanPost reports whether the batch may transition to POSTED.
func (b *OpeningBalanceBatch) CanPost() bool {
	return b.Status == BatchDraft
}

// CanReverse reports whether the batch may transition to REVERSED.
func (b *OpeningBalanceBatch) CanReverse() bool {
	return b.Status == BatchPosted
}

// OpeningBalanceLine is one debit or credit seed amount within a batch.
// Within a batch exactly one of Debit/Credit is positive per line and both
// are non-negative; LineNo preserves insertion order.
type OpeningBalanceLine struct {
	LineID       string          `json:"lineID"`
	BatchID      string          `json:"batchID"`
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
	AuditFields
}

// AccountBalance is the materialized opening snapshot for one account,
// period and currency. It is written only by batch posting (overwrite) and
// batch reversal (zeroing); all other balance figures are derived on read.
// DimensionID is nil for batch-sourced rows.
type AccountBalance struct {
	BalanceID     string          `json:"balanceID"`
	CompanyID     string          `json:"companyID"`
	AccountID     string          `json:"accountID"`
	FiscalYearID  string          `json:"fiscalYearID"`
	PeriodID      string          `json:"periodID"`
	CurrencyCode  string          `json:"currencyCode"`
	DimensionID   *string         `json:"dimensionID,omitempty"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	AuditFields
}

// OpeningLineGroup is the per (account, currency) rollup of a batch's lines,
// used when materializing or zeroing account balances.
type OpeningLineGroup struct {
	AccountID    string
	CurrencyCode string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
}
