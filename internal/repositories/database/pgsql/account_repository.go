package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, company_id, code, name, name_local, classification, type_code,
	in_income_statement, is_group, level, COALESCE(parent_account_id, ''), is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.CompanyID,
		&account.Code,
		&account.Name,
		&account.NameLocal,
		&account.Classification,
		&account.TypeCode,
		&account.InIncomeStatement,
		&account.IsGroup,
		&account.Level,
		&account.ParentAccountID,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	return account, err
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = $2;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by id %s: %w", accountID, err)
	}
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND code = $2;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return &account, nil
}

func (r *PgxAccountRepository) ListPostingAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND is_group = FALSE
		ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posting accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan posting accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListPostingAccountsByClassification(ctx context.Context, companyID string, classification domain.AccountClassification) ([]domain.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND is_group = FALSE AND classification = $2
		ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, companyID, classification)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by classification %s: %w", classification, err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts by classification: %w", err)
	}
	return accounts, nil
}
