package repositories

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// CurrencyRepository defines read access to currency reference data and the
// company record it defaults from.
type CurrencyRepository interface {
	// FindCurrencyByCode retrieves a currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindCompanyByID retrieves the company record, used to resolve the
	// company's base currency when a line omits one.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}
