package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/utils/accounting"
)

// ledgerService aggregates posted journal lines and posted opening batches
// into account balances and ledger reports. It never mutates the store.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListAccounts(ctx context.Context, companyID string, asOf time.Time, excludeZero bool) ([]domain.AccountSummary, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf date is required", apperrors.ErrValidation)
	}
	accounts, err := s.accountRepo.ListPostingAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	journalNet, err := s.ledgerRepo.JournalNetByAccount(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}
	openingNet, err := s.ledgerRepo.OpeningNetByAccount(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}

	// Accounts arrive ordered by code, so the output stays code-sorted.
	summaries := make([]domain.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		balance := journalNet[account.AccountID].Add(openingNet[account.AccountID])
		if balance.IsZero() && excludeZero {
			continue
		}
		summaries = append(summaries, domain.AccountSummary{
			AccountID:      account.AccountID,
			Code:           account.Code,
			Name:           account.Name,
			Classification: account.Classification,
			Balance:        balance,
		})
	}
	return summaries, nil
}

func (s *ledgerService) GetOpeningBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	if before.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	journalNet, err := s.ledgerRepo.JournalNetForAccount(ctx, companyID, accountID, before)
	if err != nil {
		return decimal.Zero, err
	}
	openingNet, err := s.ledgerRepo.OpeningNetForAccount(ctx, companyID, accountID, before)
	if err != nil {
		return decimal.Zero, err
	}
	return journalNet.Add(openingNet), nil
}

func (s *ledgerService) GetLedger(ctx context.Context, companyID string, params dto.LedgerParams) (*domain.LedgerReport, error) {
	account, err := s.resolveAccount(ctx, companyID, params)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(params.FromDate, params.ToDate); err != nil {
		return nil, err
	}
	return s.buildLedger(ctx, companyID, account, params)
}

func (s *ledgerService) GetLedgerByClassification(ctx context.Context, companyID string, classification domain.AccountClassification, params dto.LedgerParams) (map[string]*domain.LedgerReport, error) {
	if err := validateDateRange(params.FromDate, params.ToDate); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListPostingAccountsByClassification(ctx, companyID, classification)
	if err != nil {
		return nil, err
	}

	reports := make(map[string]*domain.LedgerReport, len(accounts))
	for i := range accounts {
		report, err := s.buildLedger(ctx, companyID, &accounts[i], params)
		if err != nil {
			s.LogError(ctx, err, "failed to build ledger for account", slog.String("account_code", accounts[i].Code))
			return nil, err
		}
		reports[accounts[i].Code] = report
	}
	return reports, nil
}

func (s *ledgerService) resolveAccount(ctx context.Context, companyID string, params dto.LedgerParams) (*domain.Account, error) {
	var account *domain.Account
	var err error
	switch {
	case params.AccountID != "":
		account, err = s.accountRepo.FindAccountByID(ctx, companyID, params.AccountID)
	case params.AccountCode != "":
		account, err = s.accountRepo.FindAccountByCode(ctx, companyID, params.AccountCode)
	default:
		return nil, fmt.Errorf("%w: account id or code is required", apperrors.ErrValidation)
	}
	if err != nil {
		return nil, err
	}
	if account.IsGroup {
		return nil, fmt.Errorf("%w: account %s is a group account and has no ledger", apperrors.ErrValidation, account.Code)
	}
	return account, nil
}

func validateDateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: fromDate and toDate are required", apperrors.ErrValidation)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: toDate must not precede fromDate", apperrors.ErrValidation)
	}
	return nil
}

// buildLedger assembles the dated movement rows and running balances for one
// account over [FromDate, ToDate].
func (s *ledgerService) buildLedger(ctx context.Context, companyID string, account *domain.Account, params dto.LedgerParams) (*domain.LedgerReport, error) {
	opening, err := s.GetOpeningBalance(ctx, companyID, account.AccountID, params.FromDate)
	if err != nil {
		return nil, err
	}

	openingMovements, err := s.ledgerRepo.ListOpeningMovements(ctx, companyID, account.AccountID, params.FromDate, params.ToDate)
	if err != nil {
		return nil, err
	}
	journalMovements, err := s.ledgerRepo.ListJournalMovements(ctx, companyID, account.AccountID, params.FromDate, params.ToDate)
	if err != nil {
		return nil, err
	}

	movements := make([]domain.LedgerMovement, 0, len(openingMovements)+len(journalMovements))
	movements = append(movements, openingMovements...)
	movements = append(movements, journalMovements...)
	sort.SliceStable(movements, func(i, j int) bool {
		if !movements[i].Date.Equal(movements[j].Date) {
			return movements[i].Date.Before(movements[j].Date)
		}
		return movements[i].Reference < movements[j].Reference
	})

	rows := make([]domain.LedgerRow, 0, len(movements)+1)
	if params.IncludeOpeningRow {
		debit, credit := accounting.SplitBalance(opening)
		rows = append(rows, domain.LedgerRow{
			IsOpening:      true,
			Description:    "Opening balance",
			Debit:          debit,
			Credit:         credit,
			RunningBalance: opening,
		})
	}

	running := opening
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, m := range movements {
		running = running.Add(accounting.Net(m.Debit, m.Credit))
		totalDebit = totalDebit.Add(m.Debit)
		totalCredit = totalCredit.Add(m.Credit)
		rows = append(rows, domain.LedgerRow{
			Date:           m.Date,
			Reference:      m.Reference,
			Description:    m.Description,
			Debit:          m.Debit,
			Credit:         m.Credit,
			RunningBalance: running,
		})
	}

	return &domain.LedgerReport{
		Account: *account,
		Rows:    rows,
		Summary: domain.LedgerSummary{
			OpeningBalance: opening,
			TotalDebit:     totalDebit,
			TotalCredit:    totalCredit,
			ClosingBalance: opening.Add(totalDebit).Sub(totalCredit),
			IsBalanced:     accounting.EqualWithinTolerance(totalDebit, totalCredit),
		},
	}, nil
}
