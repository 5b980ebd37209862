package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	AccountRepo        AccountRepository
	CurrencyRepo       CurrencyRepository
	JournalRepo        JournalRepository
	PeriodRepo         PeriodRepository
	OpeningBalanceRepo OpeningBalanceRepository
	LedgerRepo         LedgerRepository
}
