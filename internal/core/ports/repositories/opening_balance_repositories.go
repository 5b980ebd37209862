package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// OpeningBalanceRepository owns opening balance batches, their lines and the
// materialized account balance snapshots.
//
// PostBatch and ReverseBatch are check-then-act sequences: they re-verify the
// batch status and the one-posted-batch-per-period invariant inside the same
// database transaction that flips the status, so concurrent callers cannot
// both succeed. A partial unique index on posted batches per (company,
// period) backstops the in-transaction check.
type OpeningBalanceRepository interface {
	CreateBatch(ctx context.Context, batch domain.OpeningBalanceBatch) error

	// FindBatchByID retrieves a batch scoped to a company.
	FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.OpeningBalanceBatch, error)

	// FindBatchByNo resolves a batch by its company-unique number. Returns
	// apperrors.ErrNotFound when absent so callers can create it.
	FindBatchByNo(ctx context.Context, companyID, batchNo string) (*domain.OpeningBalanceBatch, error)

	// UpdateBatchPeriod rebinds a draft batch to a fiscal year and period.
	UpdateBatchPeriod(ctx context.Context, batchID, fiscalYearID, periodID, updatedBy string, updatedAt time.Time) error

	// ListBatches returns a page of batches ordered by creation time
	// descending, with a cursor token for the next page.
	ListBatches(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.OpeningBalanceBatch, *string, error)

	// NextLineNo returns max(line_no)+1 for a batch, starting at 1.
	NextLineNo(ctx context.Context, batchID string) (int, error)

	InsertLine(ctx context.Context, line domain.OpeningBalanceLine) error

	// FindLinesByBatchID retrieves a batch's lines ordered by line number.
	FindLinesByBatchID(ctx context.Context, batchID string) ([]domain.OpeningBalanceLine, error)

	// SumBatchLines returns the batch's total debit and credit.
	SumBatchLines(ctx context.Context, batchID string) (debit, credit decimal.Decimal, err error)

	// PostBatch materializes the batch into account balances and flips the
	// status to POSTED inside one transaction. For every distinct (account,
	// currency) group it overwrites the period's opening debit/credit with
	// the group sums. Returns apperrors.ErrBatchNotDraft,
	// apperrors.ErrPeriodAlreadyPosted or apperrors.ErrBatchUnbalanced on
	// precondition failure, committing nothing.
	PostBatch(ctx context.Context, companyID, batchID, postedBy string, postedAt time.Time) error

	// ReverseBatch zeroes the account balance rows the batch materialized
	// and flips the status to REVERSED inside one transaction. Returns
	// apperrors.ErrBatchNotPosted when the batch is not POSTED.
	ReverseBatch(ctx context.Context, companyID, batchID, reversedBy string, reversedAt time.Time) error
}
