package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// IncomeStatementParams carries a resolved income statement query. FromDate
// and ToDate are required; the comparison pair is optional and must be set
// together.
type IncomeStatementParams struct {
	FromDate        time.Time
	ToDate          time.Time
	IncludeZero     bool
	CompareFromDate *time.Time
	CompareToDate   *time.Time
}

// IncomeStatementRowResponse is one account row within a section.
type IncomeStatementRowResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementSummaryResponse aggregates the three sections.
type IncomeStatementSummaryResponse struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCOGS       decimal.Decimal `json:"totalCOGS"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	NetProfitMargin decimal.Decimal `json:"netProfitMargin"`
}

// ComparisonSummaryResponse is the summary of the comparison range.
type ComparisonSummaryResponse struct {
	FromDate string                         `json:"fromDate"`
	ToDate   string                         `json:"toDate"`
	Summary  IncomeStatementSummaryResponse `json:"summary"`
}

// IncomeStatementResponse is the full report.
type IncomeStatementResponse struct {
	FromDate   string                         `json:"fromDate"`
	ToDate     string                         `json:"toDate"`
	Revenue    []IncomeStatementRowResponse   `json:"revenue"`
	COGS       []IncomeStatementRowResponse   `json:"cogs"`
	Expenses   []IncomeStatementRowResponse   `json:"expenses"`
	Summary    IncomeStatementSummaryResponse `json:"summary"`
	Comparison *ComparisonSummaryResponse     `json:"comparison,omitempty"`
}

func toIncomeStatementRows(rows []domain.IncomeStatementRow) []IncomeStatementRowResponse {
	out := make([]IncomeStatementRowResponse, len(rows))
	for i, r := range rows {
		out[i] = IncomeStatementRowResponse{
			AccountID: r.AccountID,
			Code:      r.Code,
			Name:      r.Name,
			Amount:    r.Amount,
		}
	}
	return out
}

func toIncomeStatementSummary(s domain.IncomeStatementSummary) IncomeStatementSummaryResponse {
	return IncomeStatementSummaryResponse{
		TotalRevenue:    s.TotalRevenue,
		TotalCOGS:       s.TotalCOGS,
		GrossProfit:     s.GrossProfit,
		TotalExpenses:   s.TotalExpenses,
		NetProfit:       s.NetProfit,
		NetProfitMargin: s.NetProfitMargin,
	}
}

// ToIncomeStatementResponse converts a domain report to its response form.
func ToIncomeStatementResponse(report *domain.IncomeStatementReport) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		FromDate: report.FromDate.Format("2006-01-02"),
		ToDate:   report.ToDate.Format("2006-01-02"),
		Revenue:  toIncomeStatementRows(report.Revenue),
		COGS:     toIncomeStatementRows(report.COGS),
		Expenses: toIncomeStatementRows(report.Expenses),
		Summary:  toIncomeStatementSummary(report.Summary),
	}
	if report.Comparison != nil {
		resp.Comparison = &ComparisonSummaryResponse{
			FromDate: report.Comparison.FromDate.Format("2006-01-02"),
			ToDate:   report.Comparison.ToDate.Format("2006-01-02"),
			Summary:  toIncomeStatementSummary(report.Comparison.Summary),
		}
	}
	return resp
}
