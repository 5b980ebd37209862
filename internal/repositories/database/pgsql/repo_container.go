package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	openingBalanceRepo := newPgxOpeningBalanceRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		CurrencyRepo:       currencyRepo,
		JournalRepo:        journalRepo,
		PeriodRepo:         periodRepo,
		OpeningBalanceRepo: openingBalanceRepo,
		LedgerRepo:         ledgerRepo,
	}
}
