package domain

import "time"

// FiscalYear bounds a company's accounting year. Created on first reference
// via idempotent get-or-create; concurrent creation is resolved by a unique
// constraint on (company, year) with a fetch fallback.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"`
	CompanyID    string    `json:"companyID"`
	Year         int       `json:"year"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	AuditFields
}

// AccountingPeriod bounds one month of a fiscal year. Its StartDate is the
// date opening-balance effects carry for ledger ordering purposes.
type AccountingPeriod struct {
	PeriodID     string    `json:"periodID"`
	CompanyID    string    `json:"companyID"`
	FiscalYearID string    `json:"fiscalYearID"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	AuditFields
}
