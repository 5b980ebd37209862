package repositories

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// AccountRepository defines read access to the chart of accounts.
// Account creation and maintenance belong to chart-of-accounts setup, which
// is outside this core.
type AccountRepository interface {
	// FindAccountByID retrieves an account scoped to a company.
	// Returns apperrors.ErrNotFound if it does not exist in that company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountByCode resolves an account by its chart code within a company.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListPostingAccounts returns all non-group accounts of a company,
	// ordered by code ascending. Group accounts never carry balances and are
	// excluded from every aggregation.
	ListPostingAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// ListPostingAccountsByClassification returns the non-group accounts of
	// one classification, ordered by code ascending.
	ListPostingAccountsByClassification(ctx context.Context, companyID string, classification domain.AccountClassification) ([]domain.Account, error)
}
