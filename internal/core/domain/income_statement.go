package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeStatementRow is one account-level line of an income statement
// section. Amount is credit-minus-debit for revenue accounts and
// debit-minus-credit for cost and expense accounts.
type IncomeStatementRow struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementSummary carries the section totals and derived figures.
// NetProfit always equals (TotalRevenue - TotalCOGS) - TotalExpenses and the
// margin is zero whenever revenue is not positive.
type IncomeStatementSummary struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCOGS       decimal.Decimal `json:"totalCOGS"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	NetProfitMargin decimal.Decimal `json:"netProfitMargin"` // percent
}

// ComparisonSummary is the summary-only result computed over a comparison
// period. Line rows are intentionally not carried to keep payloads bounded.
type ComparisonSummary struct {
	FromDate time.Time              `json:"fromDate"`
	ToDate   time.Time              `json:"toDate"`
	Summary  IncomeStatementSummary `json:"summary"`
}

// IncomeStatementReport is the full period income statement.
type IncomeStatementReport struct {
	FromDate   time.Time              `json:"fromDate"`
	ToDate     time.Time              `json:"toDate"`
	Revenue    []IncomeStatementRow   `json:"revenue"`
	COGS       []IncomeStatementRow   `json:"cogs"`
	Expenses   []IncomeStatementRow   `json:"expenses"`
	Summary    IncomeStatementSummary `json:"summary"`
	Comparison *ComparisonSummary     `json:"comparison,omitempty"`
}
