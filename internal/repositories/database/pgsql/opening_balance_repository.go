package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
	"github.com/slms-erp/slms_backend/internal/utils/accounting"
	"github.com/slms-erp/slms_backend/internal/utils/pagination"
)

const uniqueViolationCode = "23505"

// onePostedPerPeriodIndex backs the one-posted-batch-per-period rule at the
// database level. Matching violations are mapped to ErrPeriodAlreadyPosted.
const onePostedPerPeriodIndex = "uq_opening_batches_one_posted_per_period"

type PgxOpeningBalanceRepository struct {
	BaseRepository
}

// newPgxOpeningBalanceRepository creates a new repository for opening balance
// batches, lines and materialized account balances.
func newPgxOpeningBalanceRepository(pool *pgxpool.Pool) portsrepo.OpeningBalanceRepository {
	return &PgxOpeningBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OpeningBalanceRepository = (*PgxOpeningBalanceRepository)(nil)

const batchColumns = `
	batch_id, company_id, batch_no, fiscal_year_id, period_id, status,
	posted_at, COALESCE(posted_by, ''), reversed_at, COALESCE(reversed_by, ''),
	created_at, created_by, last_updated_at, last_updated_by`

func scanBatch(row pgx.Row) (domain.OpeningBalanceBatch, error) {
	var batch domain.OpeningBalanceBatch
	err := row.Scan(
		&batch.BatchID,
		&batch.CompanyID,
		&batch.BatchNo,
		&batch.FiscalYearID,
		&batch.PeriodID,
		&batch.Status,
		&batch.PostedAt,
		&batch.PostedBy,
		&batch.ReversedAt,
		&batch.ReversedBy,
		&batch.CreatedAt,
		&batch.CreatedBy,
		&batch.LastUpdatedAt,
		&batch.LastUpdatedBy,
	)
	return batch, err
}

func (r *PgxOpeningBalanceRepository) CreateBatch(ctx context.Context, batch domain.OpeningBalanceBatch) error {
	query := `
		INSERT INTO opening_balance_batches (batch_id, company_id, batch_no, fiscal_year_id, period_id,
			status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := r.Pool.Exec(ctx, query,
		batch.BatchID,
		batch.CompanyID,
		batch.BatchNo,
		batch.FiscalYearID,
		batch.PeriodID,
		batch.Status,
		batch.CreatedAt,
		batch.CreatedBy,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: batch number %s", apperrors.ErrDuplicate, batch.BatchNo)
		}
		return fmt.Errorf("failed to insert opening balance batch %s: %w", batch.BatchID, err)
	}
	return nil
}

func (r *PgxOpeningBalanceRepository) FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.OpeningBalanceBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM opening_balance_batches
		WHERE company_id = $1 AND batch_id = $2;`

	batch, err := scanBatch(r.Pool.QueryRow(ctx, query, companyID, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find opening balance batch by id %s: %w", batchID, err)
	}
	return &batch, nil
}

func (r *PgxOpeningBalanceRepository) FindBatchByNo(ctx context.Context, companyID, batchNo string) (*domain.OpeningBalanceBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM opening_balance_batches
		WHERE company_id = $1 AND batch_no = $2;`

	batch, err := scanBatch(r.Pool.QueryRow(ctx, query, companyID, batchNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find opening balance batch by no %s: %w", batchNo, err)
	}
	return &batch, nil
}

func (r *PgxOpeningBalanceRepository) UpdateBatchPeriod(ctx context.Context, batchID, fiscalYearID, periodID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE opening_balance_batches
		SET fiscal_year_id = $2, period_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE batch_id = $1 AND status = 'DRAFT';`

	tag, err := r.Pool.Exec(ctx, query, batchID, fiscalYearID, periodID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update period for batch %s: %w", batchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotDraft
	}
	return nil
}

func (r *PgxOpeningBalanceRepository) ListBatches(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.OpeningBalanceBatch, *string, error) {
	args := []any{companyID, limit + 1}
	query := `SELECT` + batchColumns + `
		FROM opening_balance_batches
		WHERE company_id = $1`
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: malformed pagination token", apperrors.ErrValidation)
		}
		cursorAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token timestamp: %v", apperrors.ErrValidation, err)
		}
		// batch_id breaks ties between rows created in the same instant.
		query += ` AND (created_at, batch_id) < ($3, $4)`
		args = append(args, cursorAt, fields[1])
	}
	query += `
		ORDER BY created_at DESC, batch_id DESC
		LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query opening balance batches: %w", err)
	}
	defer rows.Close()

	batches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OpeningBalanceBatch, error) {
		return scanBatch(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan opening balance batches: %w", err)
	}

	var token *string
	if len(batches) > limit {
		batches = batches[:limit]
		last := batches[len(batches)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.UTC().Format(time.RFC3339Nano), last.BatchID)
		token = &t
	}
	return batches, token, nil
}

func (r *PgxOpeningBalanceRepository) NextLineNo(ctx context.Context, batchID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(line_no), 0) + 1
		FROM opening_balance_lines
		WHERE batch_id = $1;`

	var lineNo int
	if err := r.Pool.QueryRow(ctx, query, batchID).Scan(&lineNo); err != nil {
		return 0, fmt.Errorf("failed to compute next line no for batch %s: %w", batchID, err)
	}
	return lineNo, nil
}

func (r *PgxOpeningBalanceRepository) InsertLine(ctx context.Context, line domain.OpeningBalanceLine) error {
	query := `
		INSERT INTO opening_balance_lines (line_id, batch_id, line_no, account_id, currency_code,
			debit_amount, credit_amount, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	_, err := r.Pool.Exec(ctx, query,
		line.LineID,
		line.BatchID,
		line.LineNo,
		line.AccountID,
		line.CurrencyCode,
		line.Debit,
		line.Credit,
		line.Description,
		line.CreatedAt,
		line.CreatedBy,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
	)
	if err != nil {
		// Two callers can compute the same next line_no; the UNIQUE
		// (batch_id, line_no) constraint decides and the loser retries.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: line %d already exists in batch %s", apperrors.ErrDuplicate, line.LineNo, line.BatchID)
		}
		return fmt.Errorf("failed to insert opening balance line for batch %s: %w", line.BatchID, err)
	}
	return nil
}

func (r *PgxOpeningBalanceRepository) FindLinesByBatchID(ctx context.Context, batchID string) ([]domain.OpeningBalanceLine, error) {
	query := `
		SELECT line_id, batch_id, line_no, account_id, currency_code, debit_amount, credit_amount,
			description, created_at, created_by, last_updated_at, last_updated_by
		FROM opening_balance_lines
		WHERE batch_id = $1
		ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OpeningBalanceLine, error) {
		var line domain.OpeningBalanceLine
		err := row.Scan(
			&line.LineID,
			&line.BatchID,
			&line.LineNo,
			&line.AccountID,
			&line.CurrencyCode,
			&line.Debit,
			&line.Credit,
			&line.Description,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		)
		return line, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines for batch %s: %w", batchID, err)
	}
	return lines, nil
}

func (r *PgxOpeningBalanceRepository) SumBatchLines(ctx context.Context, batchID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM opening_balance_lines
		WHERE batch_id = $1;`

	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, batchID).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum lines for batch %s: %w", batchID, err)
	}
	return debit, credit, nil
}

// lockBatch loads the batch row FOR UPDATE inside tx so the status check and
// the status flip are one atomic unit.
func (r *PgxOpeningBalanceRepository) lockBatch(ctx context.Context, tx pgx.Tx, companyID, batchID string) (*domain.OpeningBalanceBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM opening_balance_batches
		WHERE company_id = $1 AND batch_id = $2
		FOR UPDATE;`

	batch, err := scanBatch(tx.QueryRow(ctx, query, companyID, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock opening balance batch %s: %w", batchID, err)
	}
	return &batch, nil
}

func (r *PgxOpeningBalanceRepository) groupLines(ctx context.Context, tx pgx.Tx, batchID string) ([]domain.OpeningLineGroup, error) {
	query := `
		SELECT account_id, currency_code, COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM opening_balance_lines
		WHERE batch_id = $1
		GROUP BY account_id, currency_code;`

	rows, err := tx.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to group lines for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OpeningLineGroup, error) {
		var group domain.OpeningLineGroup
		err := row.Scan(&group.AccountID, &group.CurrencyCode, &group.Debit, &group.Credit)
		return group, err
	})
}

// PostBatch re-verifies every posting precondition inside the transaction and
// materializes the batch into account balances, one upsert per (account,
// currency) group, overwriting whatever the period row held before.
func (r *PgxOpeningBalanceRepository) PostBatch(ctx context.Context, companyID, batchID, postedBy string, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	batch, err := r.lockBatch(ctx, tx, companyID, batchID)
	if err != nil {
		return err
	}
	if !batch.CanPost() {
		return fmt.Errorf("%w: batch %s is %s", apperrors.ErrBatchNotDraft, batch.BatchNo, batch.Status)
	}

	var postedExists bool
	existsQuery := `
		SELECT EXISTS (
			SELECT 1 FROM opening_balance_batches
			WHERE company_id = $1 AND period_id = $2 AND status = 'POSTED'
		);`
	if err := tx.QueryRow(ctx, existsQuery, companyID, batch.PeriodID).Scan(&postedExists); err != nil {
		return fmt.Errorf("failed to check posted batches for period %s: %w", batch.PeriodID, err)
	}
	if postedExists {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodAlreadyPosted, batch.PeriodID)
	}

	var debit, credit decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM opening_balance_lines
		WHERE batch_id = $1;`
	if err := tx.QueryRow(ctx, sumQuery, batchID).Scan(&debit, &credit); err != nil {
		return fmt.Errorf("failed to re-sum lines for batch %s: %w", batchID, err)
	}
	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("%w: batch %s has no lines", apperrors.ErrValidation, batch.BatchNo)
	}
	if !accounting.EqualWithinTolerance(debit, credit) {
		return fmt.Errorf("%w: debit %s vs credit %s", apperrors.ErrBatchUnbalanced, debit.String(), credit.String())
	}

	groups, err := r.groupLines(ctx, tx, batchID)
	if err != nil {
		return err
	}

	upsertQuery := `
		INSERT INTO account_balances (balance_id, company_id, account_id, fiscal_year_id, period_id,
			currency_code, dimension_id, opening_debit, opening_credit,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, $8, $9, $10, $9, $10)
		ON CONFLICT (company_id, account_id, period_id, currency_code, COALESCE(dimension_id, ''))
		DO UPDATE SET
			opening_debit = EXCLUDED.opening_debit,
			opening_credit = EXCLUDED.opening_credit,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`

	for _, group := range groups {
		_, err := tx.Exec(ctx, upsertQuery,
			uuid.NewString(),
			companyID,
			group.AccountID,
			batch.FiscalYearID,
			batch.PeriodID,
			group.CurrencyCode,
			group.Debit,
			group.Credit,
			postedAt,
			postedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to materialize balance for account %s: %w", group.AccountID, err)
		}
	}

	updateQuery := `
		UPDATE opening_balance_batches
		SET status = 'POSTED', posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE batch_id = $1;`
	if _, err := tx.Exec(ctx, updateQuery, batchID, postedAt, postedBy); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == onePostedPerPeriodIndex {
			return fmt.Errorf("%w: period %s", apperrors.ErrPeriodAlreadyPosted, batch.PeriodID)
		}
		return fmt.Errorf("failed to mark batch %s posted: %w", batchID, err)
	}

	return r.Commit(ctx, tx)
}

// ReverseBatch zeroes the balance rows the batch materialized and flips the
// status. The one-posted-batch-per-period index guarantees every targeted row
// was last written by this batch, so zeroing cannot clobber another source.
func (r *PgxOpeningBalanceRepository) ReverseBatch(ctx context.Context, companyID, batchID, reversedBy string, reversedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	batch, err := r.lockBatch(ctx, tx, companyID, batchID)
	if err != nil {
		return err
	}
	if !batch.CanReverse() {
		return fmt.Errorf("%w: batch %s is %s", apperrors.ErrBatchNotPosted, batch.BatchNo, batch.Status)
	}

	var otherPosted bool
	otherQuery := `
		SELECT EXISTS (
			SELECT 1 FROM opening_balance_batches
			WHERE company_id = $1 AND period_id = $2 AND status = 'POSTED' AND batch_id <> $3
		);`
	if err := tx.QueryRow(ctx, otherQuery, companyID, batch.PeriodID, batchID).Scan(&otherPosted); err != nil {
		return fmt.Errorf("failed to check period ownership for batch %s: %w", batchID, err)
	}
	if otherPosted {
		return fmt.Errorf("%w: another posted batch owns period %s", apperrors.ErrPeriodAlreadyPosted, batch.PeriodID)
	}

	zeroQuery := `
		UPDATE account_balances ab
		SET opening_debit = 0, opening_credit = 0, last_updated_at = $4, last_updated_by = $5
		FROM (
			SELECT account_id, currency_code
			FROM opening_balance_lines
			WHERE batch_id = $1
			GROUP BY account_id, currency_code
		) g
		WHERE ab.company_id = $2 AND ab.period_id = $3
			AND ab.account_id = g.account_id AND ab.currency_code = g.currency_code
			AND ab.dimension_id IS NULL;`
	if _, err := tx.Exec(ctx, zeroQuery, batchID, companyID, batch.PeriodID, reversedAt, reversedBy); err != nil {
		return fmt.Errorf("failed to zero balances for batch %s: %w", batchID, err)
	}

	updateQuery := `
		UPDATE opening_balance_batches
		SET status = 'REVERSED', reversed_at = $2, reversed_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE batch_id = $1;`
	if _, err := tx.Exec(ctx, updateQuery, batchID, reversedAt, reversedBy); err != nil {
		return fmt.Errorf("failed to mark batch %s reversed: %w", batchID, err)
	}

	return r.Commit(ctx, tx)
}
