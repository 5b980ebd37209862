package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListPostingAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListPostingAccountsByClassification(ctx context.Context, companyID string, classification domain.AccountClassification) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, classification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) GetOrCreateFiscalYear(ctx context.Context, companyID string, year int, createdBy string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, year, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockPeriodRepository) GetOrCreatePeriod(ctx context.Context, companyID, fiscalYearID string, year, month int, createdBy string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, companyID, fiscalYearID, year, month, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

// --- Mock OpeningBalanceRepository ---
type MockOpeningBalanceRepository struct {
	mock.Mock
}

func (m *MockOpeningBalanceRepository) CreateBatch(ctx context.Context, batch domain.OpeningBalanceBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.OpeningBalanceBatch, error) {
	args := m.Called(ctx, companyID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceBatch), args.Error(1)
}

func (m *MockOpeningBalanceRepository) FindBatchByNo(ctx context.Context, companyID, batchNo string) (*domain.OpeningBalanceBatch, error) {
	args := m.Called(ctx, companyID, batchNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceBatch), args.Error(1)
}

func (m *MockOpeningBalanceRepository) UpdateBatchPeriod(ctx context.Context, batchID, fiscalYearID, periodID, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, batchID, fiscalYearID, periodID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) ListBatches(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.OpeningBalanceBatch, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var batches []domain.OpeningBalanceBatch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.OpeningBalanceBatch)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return batches, token, args.Error(2)
}

func (m *MockOpeningBalanceRepository) NextLineNo(ctx context.Context, batchID string) (int, error) {
	args := m.Called(ctx, batchID)
	return args.Int(0), args.Error(1)
}

func (m *MockOpeningBalanceRepository) InsertLine(ctx context.Context, line domain.OpeningBalanceLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) FindLinesByBatchID(ctx context.Context, batchID string) ([]domain.OpeningBalanceLine, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalanceLine), args.Error(1)
}

func (m *MockOpeningBalanceRepository) SumBatchLines(ctx context.Context, batchID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockOpeningBalanceRepository) PostBatch(ctx context.Context, companyID, batchID, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, companyID, batchID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) ReverseBatch(ctx context.Context, companyID, batchID, reversedBy string, reversedAt time.Time) error {
	args := m.Called(ctx, companyID, batchID, reversedBy, reversedAt)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) JournalNetByAccount(ctx context.Context, companyID string, asOf time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) OpeningNetByAccount(ctx context.Context, companyID string, asOf time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) JournalNetForAccount(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) OpeningNetForAccount(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListJournalMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerMovement, error) {
	args := m.Called(ctx, companyID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerMovement), args.Error(1)
}

func (m *MockLedgerRepository) ListOpeningMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerMovement, error) {
	args := m.Called(ctx, companyID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerMovement), args.Error(1)
}

func (m *MockLedgerRepository) RevenueRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeStatementRow), args.Error(1)
}

func (m *MockLedgerRepository) COGSRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeStatementRow), args.Error(1)
}

func (m *MockLedgerRepository) ExpenseRows(ctx context.Context, companyID string, from, to time.Time) ([]domain.IncomeStatementRow, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeStatementRow), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error {
	args := m.Called(ctx, journal, transactions)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
