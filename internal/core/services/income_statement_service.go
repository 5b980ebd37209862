package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

// incomeStatementService builds profit and loss reports from posted journal
// lines, sectioned into revenue, cost of goods sold and expenses.
type incomeStatementService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
}

// NewIncomeStatementService creates a new income statement service.
func NewIncomeStatementService(ledgerRepo portsrepo.LedgerRepository) portssvc.IncomeStatementSvcFacade {
	return &incomeStatementService{ledgerRepo: ledgerRepo}
}

var _ portssvc.IncomeStatementSvcFacade = (*incomeStatementService)(nil)

func (s *incomeStatementService) GetIncomeStatement(ctx context.Context, companyID string, params dto.IncomeStatementParams) (*domain.IncomeStatementReport, error) {
	if err := validateDateRange(params.FromDate, params.ToDate); err != nil {
		return nil, err
	}
	if (params.CompareFromDate == nil) != (params.CompareToDate == nil) {
		return nil, fmt.Errorf("%w: comparison requires both compareFromDate and compareToDate", apperrors.ErrValidation)
	}

	revenue, cogs, expenses, summary, err := s.buildSections(ctx, companyID, params.FromDate, params.ToDate)
	if err != nil {
		return nil, err
	}
	if !params.IncludeZero {
		revenue = dropZeroRows(revenue)
		cogs = dropZeroRows(cogs)
		expenses = dropZeroRows(expenses)
	}

	report := &domain.IncomeStatementReport{
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
		Revenue:  revenue,
		COGS:     cogs,
		Expenses: expenses,
		Summary:  summary,
	}

	if params.CompareFromDate != nil {
		if err := validateDateRange(*params.CompareFromDate, *params.CompareToDate); err != nil {
			return nil, err
		}
		_, _, _, compareSummary, err := s.buildSections(ctx, companyID, *params.CompareFromDate, *params.CompareToDate)
		if err != nil {
			return nil, err
		}
		report.Comparison = &domain.ComparisonSummary{
			FromDate: *params.CompareFromDate,
			ToDate:   *params.CompareToDate,
			Summary:  compareSummary,
		}
	}
	return report, nil
}

// buildSections fetches the three sections and computes the summary over the
// unfiltered rows, so zero-row filtering never shifts the totals.
func (s *incomeStatementService) buildSections(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, []domain.IncomeStatementRow, []domain.IncomeStatementRow, domain.IncomeStatementSummary, error) {
	var summary domain.IncomeStatementSummary
	revenue, err := s.ledgerRepo.RevenueRows(ctx, companyID, from, to)
	if err != nil {
		return nil, nil, nil, summary, err
	}
	cogs, err := s.ledgerRepo.COGSRows(ctx, companyID, from, to)
	if err != nil {
		return nil, nil, nil, summary, err
	}
	expenses, err := s.ledgerRepo.ExpenseRows(ctx, companyID, from, to)
	if err != nil {
		return nil, nil, nil, summary, err
	}

	summary.TotalRevenue = sumRows(revenue)
	summary.TotalCOGS = sumRows(cogs)
	summary.TotalExpenses = sumRows(expenses)
	summary.GrossProfit = summary.TotalRevenue.Sub(summary.TotalCOGS)
	summary.NetProfit = summary.GrossProfit.Sub(summary.TotalExpenses)
	if summary.TotalRevenue.IsPositive() {
		summary.NetProfitMargin = summary.NetProfit.Div(summary.TotalRevenue).Mul(oneHundred)
	}
	return revenue, cogs, expenses, summary, nil
}

func sumRows(rows []domain.IncomeStatementRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}

func dropZeroRows(rows []domain.IncomeStatementRow) []domain.IncomeStatementRow {
	out := rows[:0:0]
	for _, row := range rows {
		if !row.Amount.IsZero() {
			out = append(out, row)
		}
	}
	return out
}
