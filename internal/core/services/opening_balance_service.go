package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portsrepo "github.com/slms-erp/slms_backend/internal/core/ports/repositories"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/utils/accounting"
)

const (
	defaultBatchPageSize = 20
	maxBatchPageSize     = 100
)

// openingBalanceService drives the opening balance batch lifecycle:
// draft accumulation, posting into account balances, and reversal.
type openingBalanceService struct {
	BaseService
	batchRepo    portsrepo.OpeningBalanceRepository
	accountRepo  portsrepo.AccountRepository
	currencyRepo portsrepo.CurrencyRepository
	periodRepo   portsrepo.PeriodRepository
}

// NewOpeningBalanceService creates a new opening balance service.
func NewOpeningBalanceService(
	batchRepo portsrepo.OpeningBalanceRepository,
	accountRepo portsrepo.AccountRepository,
	currencyRepo portsrepo.CurrencyRepository,
	periodRepo portsrepo.PeriodRepository,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.OpeningBalanceSvcFacade {
	return &openingBalanceService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		batchRepo:    batchRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		periodRepo:   periodRepo,
	}
}

var _ portssvc.OpeningBalanceSvcFacade = (*openingBalanceService)(nil)

// parsePeriodToken splits a YYYY-MM token into year and month.
func parsePeriodToken(token string) (int, int, error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: period must use the YYYY-MM form, got %q", apperrors.ErrValidation, token)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1900 || year > 9999 {
		return 0, 0, fmt.Errorf("%w: invalid period year %q", apperrors.ErrValidation, parts[0])
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: invalid period month %q", apperrors.ErrValidation, parts[1])
	}
	return year, month, nil
}

// validateLineAmounts enforces that exactly one of debit/credit is positive
// and the other is zero.
func validateLineAmounts(req dto.AddOpeningBalanceLineRequest) error {
	if req.Debit.IsNegative() || req.Credit.IsNegative() {
		return fmt.Errorf("%w: debit and credit must be non-negative", apperrors.ErrValidation)
	}
	if req.Debit.IsPositive() == req.Credit.IsPositive() {
		return fmt.Errorf("%w: exactly one of debit or credit must be positive", apperrors.ErrValidation)
	}
	return nil
}

func (s *openingBalanceService) AddLine(ctx context.Context, companyID string, req dto.AddOpeningBalanceLineRequest, userID string) (*domain.OpeningBalanceLine, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if err := validateLineAmounts(req); err != nil {
		return nil, err
	}
	year, month, err := parsePeriodToken(req.Period)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, req.AccountCode)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve account for opening balance line", slog.String("account_code", req.AccountCode))
		return nil, err
	}
	if account.IsGroup {
		return nil, fmt.Errorf("%w: account %s is a group account and cannot carry balances", apperrors.ErrValidation, account.Code)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		company, err := s.currencyRepo.FindCompanyByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		currencyCode = company.BaseCurrencyCode
	} else {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
			return nil, err
		}
	}

	fiscalYear, err := s.periodRepo.GetOrCreateFiscalYear(ctx, companyID, year, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve fiscal year", slog.Int("year", year))
		return nil, err
	}
	period, err := s.periodRepo.GetOrCreatePeriod(ctx, companyID, fiscalYear.FiscalYearID, year, month, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve accounting period", slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}

	now := time.Now().UTC()
	batch, err := s.batchRepo.FindBatchByNo(ctx, companyID, req.BatchNo)
	switch {
	case err == nil:
		if !batch.CanPost() {
			return nil, fmt.Errorf("%w: batch %s is %s", apperrors.ErrBatchNotDraft, batch.BatchNo, batch.Status)
		}
		if batch.PeriodID != period.PeriodID {
			if err := s.batchRepo.UpdateBatchPeriod(ctx, batch.BatchID, fiscalYear.FiscalYearID, period.PeriodID, userID, now); err != nil {
				return nil, err
			}
			batch.FiscalYearID = fiscalYear.FiscalYearID
			batch.PeriodID = period.PeriodID
		}
	case apperrors.IsNotFound(err):
		batch = &domain.OpeningBalanceBatch{
			BatchID:      uuid.NewString(),
			CompanyID:    companyID,
			BatchNo:      req.BatchNo,
			FiscalYearID: fiscalYear.FiscalYearID,
			PeriodID:     period.PeriodID,
			Status:       domain.BatchDraft,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.batchRepo.CreateBatch(ctx, *batch); err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "created opening balance batch",
			slog.String("batch_id", batch.BatchID),
			slog.String("batch_no", batch.BatchNo))
	default:
		return nil, err
	}

	lineNo, err := s.batchRepo.NextLineNo(ctx, batch.BatchID)
	if err != nil {
		return nil, err
	}
	line := domain.OpeningBalanceLine{
		LineID:       uuid.NewString(),
		BatchID:      batch.BatchID,
		LineNo:       lineNo,
		AccountID:    account.AccountID,
		CurrencyCode: currencyCode,
		Debit:        req.Debit,
		Credit:       req.Credit,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.batchRepo.InsertLine(ctx, line); err != nil {
		s.LogError(ctx, err, "failed to insert opening balance line", slog.String("batch_id", batch.BatchID))
		return nil, err
	}
	return &line, nil
}

func (s *openingBalanceService) PostBatch(ctx context.Context, companyID, batchID, userID string) (*domain.OpeningBalanceBatch, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.FindBatchByID(ctx, companyID, batchID)
	if err != nil {
		return nil, err
	}
	if !batch.CanPost() {
		return nil, fmt.Errorf("%w: batch %s is %s", apperrors.ErrBatchNotDraft, batch.BatchNo, batch.Status)
	}

	lines, err := s.batchRepo.FindLinesByBatchID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: batch %s has no lines", apperrors.ErrValidation, batch.BatchNo)
	}
	debit, credit, err := s.batchRepo.SumBatchLines(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !accounting.EqualWithinTolerance(debit, credit) {
		return nil, fmt.Errorf("%w: debit %s vs credit %s", apperrors.ErrBatchUnbalanced, debit.String(), credit.String())
	}

	// The repository re-verifies status, balance and the
	// one-posted-batch-per-period rule inside its transaction.
	now := time.Now().UTC()
	if err := s.batchRepo.PostBatch(ctx, companyID, batchID, userID, now); err != nil {
		s.LogError(ctx, err, "failed to post opening balance batch", slog.String("batch_id", batchID))
		return nil, err
	}
	s.LogInfo(ctx, "posted opening balance batch",
		slog.String("batch_id", batchID),
		slog.String("batch_no", batch.BatchNo),
		slog.String("period_id", batch.PeriodID))
	return s.batchRepo.FindBatchByID(ctx, companyID, batchID)
}

func (s *openingBalanceService) ReverseBatch(ctx context.Context, companyID, batchID, userID string) (*domain.OpeningBalanceBatch, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.FindBatchByID(ctx, companyID, batchID)
	if err != nil {
		return nil, err
	}
	if !batch.CanReverse() {
		return nil, fmt.Errorf("%w: batch %s is %s", apperrors.ErrBatchNotPosted, batch.BatchNo, batch.Status)
	}

	now := time.Now().UTC()
	if err := s.batchRepo.ReverseBatch(ctx, companyID, batchID, userID, now); err != nil {
		s.LogError(ctx, err, "failed to reverse opening balance batch", slog.String("batch_id", batchID))
		return nil, err
	}
	s.LogInfo(ctx, "reversed opening balance batch",
		slog.String("batch_id", batchID),
		slog.String("batch_no", batch.BatchNo))
	return s.batchRepo.FindBatchByID(ctx, companyID, batchID)
}

func (s *openingBalanceService) GetBatch(ctx context.Context, companyID, batchID string) (*domain.OpeningBalanceBatch, []domain.OpeningBalanceLine, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, companyID, batchID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.batchRepo.FindLinesByBatchID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	return batch, lines, nil
}

func (s *openingBalanceService) ListBatches(ctx context.Context, companyID string, params dto.ListBatchesParams) ([]domain.OpeningBalanceBatch, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultBatchPageSize
	}
	if limit > maxBatchPageSize {
		limit = maxBatchPageSize
	}
	return s.batchRepo.ListBatches(ctx, companyID, limit, params.NextToken)
}
