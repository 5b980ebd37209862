package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced = fmt.Errorf("%w: journal debits and credits do not balance", apperrors.ErrValidation)
	ErrJournalMinLines   = fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrValidation)
)

// journalService records balanced journal entries into the ledger store.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepository
	accountRepo  portsrepo.AccountRepository
	currencyRepo portsrepo.CurrencyRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, currencyRepo portsrepo.CurrencyRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, []domain.Transaction, error) {
	if len(req.Lines) < 2 {
		return nil, nil, ErrJournalMinLines
	}

	company, err := s.currencyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	now := time.Now().UTC()
	journalID := uuid.NewString()
	transactions := make([]domain.Transaction, 0, len(req.Lines))
	for i, line := range req.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return nil, nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit positive", apperrors.ErrValidation, i+1)
		}
		account, err := s.accountRepo.FindAccountByID(ctx, companyID, line.AccountID)
		if err != nil {
			return nil, nil, err
		}
		if account.IsGroup {
			return nil, nil, fmt.Errorf("%w: account %s is a group account and cannot be posted to", apperrors.ErrValidation, account.Code)
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
		}

		currencyCode := line.CurrencyCode
		if currencyCode == "" {
			currencyCode = company.BaseCurrencyCode
		} else if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
			return nil, nil, err
		}

		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
		transactions = append(transactions, domain.Transaction{
			TransactionID: uuid.NewString(),
			JournalID:     journalID,
			AccountID:     line.AccountID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			CurrencyCode:  currencyCode,
			Notes:         line.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if !accounting.EqualWithinTolerance(totalDebit, totalCredit) {
		return nil, nil, fmt.Errorf("%w: debit %s vs credit %s", ErrJournalUnbalanced, totalDebit.String(), totalCredit.String())
	}

	journal := domain.Journal{
		JournalID:   journalID,
		CompanyID:   companyID,
		JournalDate: req.JournalDate,
		Reference:   req.Reference,
		Description: req.Description,
		Status:      domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.journalRepo.SaveJournal(ctx, journal, transactions); err != nil {
		s.LogError(ctx, err, "failed to save journal", slog.String("journal_id", journalID))
		return nil, nil, err
	}
	s.LogInfo(ctx, "posted journal",
		slog.String("journal_id", journalID),
		slog.Int("lines", len(transactions)))
	return &journal, transactions, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, []domain.Transaction, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID)
	if err != nil {
		return nil, nil, err
	}
	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		return nil, nil, err
	}
	return journal, transactions, nil
}
