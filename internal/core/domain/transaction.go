package domain

import "github.com/shopspring/decimal"

// Transaction represents one debit or credit line within a journal.
// Exactly one of Debit/Credit is non-zero per line by convention of the
// upstream poster; intake validation enforces it on entries created here.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	JournalID     string          `json:"journalID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CurrencyCode  string          `json:"currencyCode"`
	Notes         string          `json:"notes"`
	AuditFields
}
