package repositories

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// PeriodRepository bootstraps fiscal years and accounting periods on first
// reference. Both operations are idempotent get-or-create: the insert relies
// on a uniqueness constraint and falls back to fetching the existing row, so
// concurrent creation never produces duplicates.
type PeriodRepository interface {
	GetOrCreateFiscalYear(ctx context.Context, companyID string, year int, createdBy string) (*domain.FiscalYear, error)

	GetOrCreatePeriod(ctx context.Context, companyID, fiscalYearID string, year, month int, createdBy string) (*domain.AccountingPeriod, error)

	// FindPeriodByID retrieves a period, used to resolve period start dates.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
}
