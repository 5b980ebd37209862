package services

import (
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service facade over the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		OpeningBalance: NewOpeningBalanceService(
			repos.OpeningBalanceRepo,
			repos.AccountRepo,
			repos.CurrencyRepo,
			repos.PeriodRepo,
			nil,
		),
		Ledger:          NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
		IncomeStatement: NewIncomeStatementService(repos.LedgerRepo),
		Journal:         NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.CurrencyRepo),
	}
}
