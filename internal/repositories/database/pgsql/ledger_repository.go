package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the read-side repository aggregating posted
// journal lines and materialized opening balances.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) netByAccount(ctx context.Context, query string, args ...any) (map[string]decimal.Decimal, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query net balances: %w", err)
	}
	defer rows.Close()

	nets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var net decimal.Decimal
		if err := rows.Scan(&accountID, &net); err != nil {
			return nil, fmt.Errorf("failed to scan net balance row: %w", err)
		}
		nets[accountID] = net
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read net balance rows: %w", err)
	}
	return nets, nil
}

func (r *PgxLedgerRepository) JournalNetByAccount(ctx context.Context, companyID string, asOf time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT t.account_id, COALESCE(SUM(t.debit_amount - t.credit_amount), 0)
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE j.company_id = $1 AND j.status = 'POSTED' AND j.journal_date <= $2
		GROUP BY t.account_id;`
	return r.netByAccount(ctx, query, companyID, asOf)
}

func (r *PgxLedgerRepository) OpeningNetByAccount(ctx context.Context, companyID string, asOf time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT ab.account_id, COALESCE(SUM(ab.opening_debit - ab.opening_credit), 0)
		FROM account_balances ab
		JOIN accounting_periods p ON p.period_id = ab.period_id
		WHERE ab.company_id = $1 AND p.start_date <= $2
		GROUP BY ab.account_id;`
	return r.netByAccount(ctx, query, companyID, asOf)
}

func (r *PgxLedgerRepository) JournalNetForAccount(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.debit_amount - t.credit_amount), 0)
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE j.company_id = $1 AND t.account_id = $2 AND j.status = 'POSTED' AND j.journal_date < $3;`

	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, before).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum journal net for account %s: %w", accountID, err)
	}
	return net, nil
}

func (r *PgxLedgerRepository) OpeningNetForAccount(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ab.opening_debit - ab.opening_credit), 0)
		FROM account_balances ab
		JOIN accounting_periods p ON p.period_id = ab.period_id
		WHERE ab.company_id = $1 AND ab.account_id = $2 AND p.start_date < $3;`

	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, before).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum opening net for account %s: %w", accountID, err)
	}
	return net, nil
}

func collectMovements(rows pgx.Rows, source domain.MovementSource) ([]domain.LedgerMovement, error) {
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerMovement, error) {
		m := domain.LedgerMovement{Source: source}
		err := row.Scan(&m.Date, &m.Reference, &m.Description, &m.Debit, &m.Credit)
		return m, err
	})
}

func (r *PgxLedgerRepository) ListJournalMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerMovement, error) {
	query := `
		SELECT j.journal_date, j.reference, COALESCE(NULLIF(t.notes, ''), j.description),
			t.debit_amount, t.credit_amount
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE j.company_id = $1 AND t.account_id = $2 AND j.status = 'POSTED'
			AND j.journal_date >= $3 AND j.journal_date <= $4
		ORDER BY j.journal_date, j.reference, t.transaction_id;`

	rows, err := r.Pool.Query(ctx, query, companyID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal movements for account %s: %w", accountID, err)
	}
	movements, err := collectMovements(rows, domain.MovementJournal)
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal movements for account %s: %w", accountID, err)
	}
	return movements, nil
}

func (r *PgxLedgerRepository) ListOpeningMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerMovement, error) {
	query := `
		SELECT p.start_date, b.batch_no, 'Opening balance',
			COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM opening_balance_batches b
		JOIN opening_balance_lines l ON l.batch_id = b.batch_id
		JOIN accounting_periods p ON p.period_id = b.period_id
		WHERE b.company_id = $1 AND l.account_id = $2 AND b.status = 'POSTED'
			AND p.start_date >= $3 AND p.start_date <= $4
		GROUP BY p.start_date, b.batch_no
		ORDER BY p.start_date, b.batch_no;`

	rows, err := r.Pool.Query(ctx, query, companyID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening movements for account %s: %w", accountID, err)
	}
	movements, err := collectMovements(rows, domain.MovementOpening)
	if err != nil {
		return nil, fmt.Errorf("failed to scan opening movements for account %s: %w", accountID, err)
	}
	return movements, nil
}

// sectionRows groups posted journal activity per account for one income
// statement section. The LEFT JOIN keeps accounts with no activity so callers
// can decide whether to show zero rows. The section filter binds its values
// through filterArgs, numbered from $4.
func (r *PgxLedgerRepository) sectionRows(ctx context.Context, companyID string, from, to time.Time, sectionFilter, amountExpr string, filterArgs ...any) ([]domain.IncomeStatementRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, COALESCE(` + amountExpr + `, 0)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.account_id
		LEFT JOIN journals j ON j.journal_id = t.journal_id
			AND j.company_id = $1 AND j.status = 'POSTED'
			AND j.journal_date >= $2 AND j.journal_date <= $3
		WHERE a.company_id = $1 AND a.is_group = FALSE AND a.in_income_statement = TRUE
			AND ` + sectionFilter + `
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;`

	args := append([]any{companyID, from, to}, filterArgs...)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income statement section: %w", err)
	}
	defer rows.Close()

	sectionRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.IncomeStatementRow, error) {
		var rec domain.IncomeStatementRow
		err := row.Scan(&rec.AccountID, &rec.Code, &rec.Name, &rec.Amount)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan income statement section: %w", err)
	}
	return sectionRows, nil
}

func (r *PgxLedgerRepository) RevenueRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error) {
	// Revenue accounts increase on credit.
	return r.sectionRows(ctx, companyID, from, to,
		`a.classification = $4`,
		`SUM(CASE WHEN j.journal_id IS NULL THEN 0 ELSE t.credit_amount - t.debit_amount END)`,
		string(domain.Revenue))
}

func (r *PgxLedgerRepository) COGSRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error) {
	return r.sectionRows(ctx, companyID, from, to,
		`a.classification = $4 AND a.type_code = $5`,
		`SUM(CASE WHEN j.journal_id IS NULL THEN 0 ELSE t.debit_amount - t.credit_amount END)`,
		string(domain.Expense), string(domain.TypeCodeCOGS))
}

func (r *PgxLedgerRepository) ExpenseRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error) {
	return r.sectionRows(ctx, companyID, from, to,
		`a.classification = $4 AND a.type_code IS DISTINCT FROM $5`,
		`SUM(CASE WHEN j.journal_id IS NULL THEN 0 ELSE t.debit_amount - t.credit_amount END)`,
		string(domain.Expense), string(domain.TypeCodeCOGS))
}
