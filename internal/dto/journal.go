package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// CreateJournalLineRequest is one line of a journal entry.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Notes        string          `json:"notes"`
}

// CreateJournalRequest posts a balanced journal entry.
type CreateJournalRequest struct {
	JournalDate time.Time                  `json:"journalDate" binding:"required" time_format:"2006-01-02"`
	Reference   string                     `json:"reference"`
	Description string                     `json:"description"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TransactionResponse is one journal line in API responses.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	CurrencyCode  string          `json:"currencyCode"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Notes         string          `json:"notes"`
}

// JournalResponse represents a journal entry in API responses.
type JournalResponse struct {
	JournalID   string                `json:"journalID"`
	JournalDate string                `json:"journalDate"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	Lines       []TransactionResponse `json:"lines,omitempty"`
}

// ToJournalResponse converts a journal and its lines to the response form.
func ToJournalResponse(journal domain.Journal, transactions []domain.Transaction) JournalResponse {
	resp := JournalResponse{
		JournalID:   journal.JournalID,
		JournalDate: journal.JournalDate.Format("2006-01-02"),
		Reference:   journal.Reference,
		Description: journal.Description,
		Status:      string(journal.Status),
	}
	if len(transactions) > 0 {
		resp.Lines = make([]TransactionResponse, len(transactions))
		for i, tx := range transactions {
			resp.Lines[i] = TransactionResponse{
				TransactionID: tx.TransactionID,
				AccountID:     tx.AccountID,
				CurrencyCode:  tx.CurrencyCode,
				Debit:         tx.Debit,
				Credit:        tx.Credit,
				Notes:         tx.Notes,
			}
		}
	}
	return resp
}
