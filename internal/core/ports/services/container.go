package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	OpeningBalance  OpeningBalanceSvcFacade
	Ledger          LedgerSvcFacade
	IncomeStatement IncomeStatementSvcFacade
	Journal         JournalSvcFacade
}
