package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
	"github.com/slms-erp/slms_backend/internal/dto"
)

// LedgerSvcFacade serves account balance and ledger queries.
type LedgerSvcFacade interface {
	// ListAccounts returns per-account net balances as of a date, ordered
	// by account code. Zero-balance accounts are included unless excludeZero
	// is set.
	ListAccounts(ctx context.Context, companyID string, asOf time.Time, excludeZero bool) ([]domain.AccountSummary, error)

	// GetOpeningBalance returns the account's cumulative net balance from
	// all activity strictly before the given date.
	GetOpeningBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error)

	// GetLedger returns an account's dated movement rows with running
	// balances over an inclusive date range.
	GetLedger(ctx context.Context, companyID string, params dto.LedgerParams) (*domain.LedgerReport, error)

	// GetLedgerByClassification runs the ledger query for every posting
	// account of the classification, keyed by account code.
	GetLedgerByClassification(ctx context.Context, companyID string, classification domain.AccountClassification, params dto.LedgerParams) (map[string]*domain.LedgerReport, error)
}
