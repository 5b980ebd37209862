package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// AddOpeningBalanceLineRequest adds one line to an opening balance batch,
// creating the batch in draft status if it does not exist yet.
// Period uses the YYYY-MM token form; exactly one of debit/credit must be
// positive and the other zero. CurrencyCode defaults to the company's base
// currency when omitted.
type AddOpeningBalanceLineRequest struct {
	BatchNo      string          `json:"batchNo" binding:"required"`
	Period       string          `json:"period" binding:"required,period"`
	AccountCode  string          `json:"accountCode" binding:"required"`
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
}

// OpeningBalanceLineResponse represents one batch line in API responses.
type OpeningBalanceLineResponse struct {
	LineID       string          `json:"lineID"`
	BatchID      string          `json:"batchID"`
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
}

// OpeningBalanceBatchResponse represents a batch in API responses.
type OpeningBalanceBatchResponse struct {
	BatchID      string     `json:"batchID"`
	BatchNo      string     `json:"batchNo"`
	FiscalYearID string     `json:"fiscalYearID"`
	PeriodID     string     `json:"periodID"`
	Status       string     `json:"status"`
	PostedAt     *time.Time `json:"postedAt,omitempty"`
	PostedBy     string     `json:"postedBy,omitempty"`
	ReversedAt   *time.Time `json:"reversedAt,omitempty"`
	ReversedBy   string     `json:"reversedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// OpeningBalanceBatchDetailResponse is a batch together with its lines.
type OpeningBalanceBatchDetailResponse struct {
	OpeningBalanceBatchResponse
	Lines []OpeningBalanceLineResponse `json:"lines"`
}

// ListBatchesParams carries pagination parameters for batch listing.
type ListBatchesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListBatchesResponse is a page of batches with an optional cursor.
type ListBatchesResponse struct {
	Batches   []OpeningBalanceBatchResponse `json:"batches"`
	NextToken *string                       `json:"nextToken,omitempty"`
}

// ToOpeningBalanceLineResponse converts a domain line to its response form.
func ToOpeningBalanceLineResponse(line domain.OpeningBalanceLine) OpeningBalanceLineResponse {
	return OpeningBalanceLineResponse{
		LineID:       line.LineID,
		BatchID:      line.BatchID,
		LineNo:       line.LineNo,
		AccountID:    line.AccountID,
		CurrencyCode: line.CurrencyCode,
		Debit:        line.Debit,
		Credit:       line.Credit,
		Description:  line.Description,
	}
}

// ToOpeningBalanceBatchResponse converts a domain batch to its response form.
func ToOpeningBalanceBatchResponse(batch domain.OpeningBalanceBatch) OpeningBalanceBatchResponse {
	return OpeningBalanceBatchResponse{
		BatchID:      batch.BatchID,
		BatchNo:      batch.BatchNo,
		FiscalYearID: batch.FiscalYearID,
		PeriodID:     batch.PeriodID,
		Status:       string(batch.Status),
		PostedAt:     batch.PostedAt,
		PostedBy:     batch.PostedBy,
		ReversedAt:   batch.ReversedAt,
		ReversedBy:   batch.ReversedBy,
		CreatedAt:    batch.CreatedAt,
	}
}

// ToOpeningBalanceBatchDetailResponse converts a batch and its lines.
func ToOpeningBalanceBatchDetailResponse(batch domain.OpeningBalanceBatch, lines []domain.OpeningBalanceLine) OpeningBalanceBatchDetailResponse {
	resp := OpeningBalanceBatchDetailResponse{
		OpeningBalanceBatchResponse: ToOpeningBalanceBatchResponse(batch),
		Lines:                       make([]OpeningBalanceLineResponse, len(lines)),
	}
	for i, line := range lines {
		resp.Lines[i] = ToOpeningBalanceLineResponse(line)
	}
	return resp
}
