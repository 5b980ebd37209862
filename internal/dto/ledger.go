package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// openingRowDate is the date label carried by the synthetic opening row.
const openingRowDate = "OPENING"

// LedgerParams carries a resolved ledger query: one of AccountID/AccountCode
// identifies the account, dates bound the range inclusively.
type LedgerParams struct {
	AccountID         string
	AccountCode       string
	FromDate          time.Time
	ToDate            time.Time
	IncludeOpeningRow bool
}

// LedgerRowResponse represents one ledger row. Date carries "OPENING" for
// the synthetic opening balance row.
type LedgerRowResponse struct {
	Date           string          `json:"date"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerSummaryResponse aggregates a ledger query's transaction rows.
type LedgerSummaryResponse struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	IsBalanced     bool            `json:"isBalanced"`
}

// LedgerResponse is the ledger report for one account.
type LedgerResponse struct {
	AccountID      string                `json:"accountID"`
	AccountCode    string                `json:"accountCode"`
	AccountName    string                `json:"accountName"`
	Classification string                `json:"classification"`
	FromDate       string                `json:"fromDate"`
	ToDate         string                `json:"toDate"`
	Rows           []LedgerRowResponse   `json:"rows"`
	Summary        LedgerSummaryResponse `json:"summary"`
}

// AccountSummaryResponse is one row of the as-of account list.
type AccountSummaryResponse struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Classification string          `json:"classification"`
	Balance        decimal.Decimal `json:"balance"`
}

// ListAccountsResponse is the as-of account balance list.
type ListAccountsResponse struct {
	AsOf     string                   `json:"asOf"`
	Accounts []AccountSummaryResponse `json:"accounts"`
}

// ToLedgerResponse converts a domain ledger report to its response form.
func ToLedgerResponse(report *domain.LedgerReport, from, to time.Time) LedgerResponse {
	resp := LedgerResponse{
		AccountID:      report.Account.AccountID,
		AccountCode:    report.Account.Code,
		AccountName:    report.Account.Name,
		Classification: string(report.Account.Classification),
		FromDate:       from.Format("2006-01-02"),
		ToDate:         to.Format("2006-01-02"),
		Rows:           make([]LedgerRowResponse, len(report.Rows)),
		Summary: LedgerSummaryResponse{
			OpeningBalance: report.Summary.OpeningBalance,
			TotalDebit:     report.Summary.TotalDebit,
			TotalCredit:    report.Summary.TotalCredit,
			ClosingBalance: report.Summary.ClosingBalance,
			IsBalanced:     report.Summary.IsBalanced,
		},
	}
	for i, row := range report.Rows {
		date := row.Date.Format("2006-01-02")
		if row.IsOpening {
			date = openingRowDate
		}
		resp.Rows[i] = LedgerRowResponse{
			Date:           date,
			Reference:      row.Reference,
			Description:    row.Description,
			Debit:          row.Debit,
			Credit:         row.Credit,
			RunningBalance: row.RunningBalance,
		}
	}
	return resp
}

// ToListAccountsResponse converts the as-of account summaries.
func ToListAccountsResponse(summaries []domain.AccountSummary, asOf time.Time) ListAccountsResponse {
	resp := ListAccountsResponse{
		AsOf:     asOf.Format("2006-01-02"),
		Accounts: make([]AccountSummaryResponse, len(summaries)),
	}
	for i, s := range summaries {
		resp.Accounts[i] = AccountSummaryResponse{
			AccountID:      s.AccountID,
			Code:           s.Code,
			Name:           s.Name,
			Classification: string(s.Classification),
			Balance:        s.Balance,
		}
	}
	return resp
}

// ToLedgerByClassificationResponse converts the fan-out result keyed by
// account code.
func ToLedgerByClassificationResponse(reports map[string]*domain.LedgerReport, from, to time.Time) map[string]LedgerResponse {
	resp := make(map[string]LedgerResponse, len(reports))
	for code, report := range reports {
		resp[code] = ToLedgerResponse(report, from, to)
	}
	return resp
}
