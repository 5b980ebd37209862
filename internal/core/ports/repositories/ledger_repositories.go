package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// LedgerRepository is the read-side aggregation surface over posted journal
// lines and posted opening batches. All queries observe a consistent
// snapshot as of the moment the read began; none of them mutate state.
type LedgerRepository interface {
	// JournalNetByAccount returns, per account, the sum of posted journal
	// debit minus credit up to and including asOf.
	JournalNetByAccount(ctx context.Context, companyID string, asOf time.Time) (map[string]decimal.Decimal, error)

	// OpeningNetByAccount returns, per account, the sum of opening-batch
	// debit minus credit for POSTED batches whose period starts on or
	// before asOf.
	OpeningNetByAccount(ctx context.Context, companyID string, asOf time.Time) (map[string]decimal.Decimal, error)

	// JournalNetForAccount sums posted journal debit minus credit strictly
	// before the given date.
	JournalNetForAccount(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error)

	// OpeningNetForAccount sums posted opening-batch debit minus credit for
	// periods starting strictly before the given date.
	OpeningNetForAccount(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error)

	// ListJournalMovements returns the account's posted journal lines with
	// journal date in [from, to], as ledger movements.
	ListJournalMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerMovement, error)

	// ListOpeningMovements returns the account's posted opening-batch lines
	// whose period start falls in [from, to], as ledger movements dated at
	// the period start and referenced by batch number.
	ListOpeningMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerMovement, error)

	// RevenueRows, COGSRows and ExpenseRows return per-account grouped sums
	// over posted journal lines in [from, to] for the three income statement
	// sections, ordered by account code ascending. Zero rows are included;
	// the service filters them.
	RevenueRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error)
	COGSRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error)
	ExpenseRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error)
}
