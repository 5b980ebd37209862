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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveJournal inserts the journal header and all its lines in one
// transaction, batching the line inserts in a single round trip.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	journalQuery := `
		INSERT INTO journals (journal_id, company_id, journal_date, reference, description, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err = tx.Exec(ctx, journalQuery,
		journal.JournalID,
		journal.CompanyID,
		journal.JournalDate,
		journal.Reference,
		journal.Description,
		journal.Status,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", journal.JournalID, err)
	}

	lineQuery := `
		INSERT INTO transactions (transaction_id, journal_id, account_id, debit_amount, credit_amount,
			currency_code, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		batch.Queue(lineQuery,
			txn.TransactionID,
			txn.JournalID,
			txn.AccountID,
			txn.Debit,
			txn.Credit,
			txn.CurrencyCode,
			txn.Notes,
			txn.CreatedAt,
			txn.CreatedBy,
			txn.LastUpdatedAt,
			txn.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range transactions {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert transaction line for journal %s: %w", journal.JournalID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch for journal %s: %w", journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, company_id, journal_date, reference, description, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE company_id = $1 AND journal_id = $2;`

	var journal domain.Journal
	err := r.Pool.QueryRow(ctx, query, companyID, journalID).Scan(
		&journal.JournalID,
		&journal.CompanyID,
		&journal.JournalDate,
		&journal.Reference,
		&journal.Description,
		&journal.Status,
		&journal.CreatedAt,
		&journal.CreatedBy,
		&journal.LastUpdatedAt,
		&journal.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by id %s: %w", journalID, err)
	}
	return &journal, nil
}

func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, journal_id, account_id, debit_amount, credit_amount,
			currency_code, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE journal_id = $1
		ORDER BY created_at, transaction_id;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		var txn domain.Transaction
		err := row.Scan(
			&txn.TransactionID,
			&txn.JournalID,
			&txn.AccountID,
			&txn.Debit,
			&txn.Credit,
			&txn.CurrencyCode,
			&txn.Notes,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		)
		return txn, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for journal %s: %w", journalID, err)
	}
	return transactions, nil
}
