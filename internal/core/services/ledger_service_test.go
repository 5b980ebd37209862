package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/core/services"
	"github.com/slms-erp/slms_backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade

	companyID string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo)
	suite.companyID = uuid.NewString()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *LedgerServiceTestSuite) TestGetLedger_RunningBalances() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Code:           "1000",
		Name:           "Cash",
		Classification: domain.Asset,
		IsActive:       true,
	}
	from := date(2025, time.March, 1)
	to := date(2025, time.March, 31)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("JournalNetForAccount", ctx, suite.companyID, account.AccountID, from).
		Return(decimal.NewFromInt(200), nil).Once()
	suite.mockLedgerRepo.On("OpeningNetForAccount", ctx, suite.companyID, account.AccountID, from).
		Return(decimal.NewFromInt(300), nil).Once()
	suite.mockLedgerRepo.On("ListOpeningMovements", ctx, suite.companyID, account.AccountID, from, to).
		Return([]domain.LedgerMovement{}, nil).Once()
	suite.mockLedgerRepo.On("ListJournalMovements", ctx, suite.companyID, account.AccountID, from, to).
		Return([]domain.LedgerMovement{
			{Source: domain.MovementJournal, Date: date(2025, time.March, 2), Reference: "JV-1", Debit: decimal.NewFromInt(200)},
			{Source: domain.MovementJournal, Date: date(2025, time.March, 5), Reference: "JV-2", Credit: decimal.NewFromInt(50)},
		}, nil).Once()

	report, err := suite.service.GetLedger(ctx, suite.companyID, dto.LedgerParams{
		AccountID: account.AccountID,
		FromDate:  from,
		ToDate:    to,
	})

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Summary.OpeningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(700)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(650)))
	suite.True(report.Summary.ClosingBalance.Equal(decimal.NewFromInt(650)))
	suite.True(report.Summary.TotalDebit.Equal(decimal.NewFromInt(200)))
	suite.True(report.Summary.TotalCredit.Equal(decimal.NewFromInt(50)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetLedger_OpeningRowAndOrdering() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		Code:           "1000",
		Classification: domain.Asset,
		IsActive:       true,
	}
	from := date(2025, time.January, 1)
	to := date(2025, time.January, 31)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1000").Return(account, nil).Once()
	suite.mockLedgerRepo.On("JournalNetForAccount", ctx, suite.companyID, account.AccountID, from).
		Return(decimal.Zero, nil).Once()
	suite.mockLedgerRepo.On("OpeningNetForAccount", ctx, suite.companyID, account.AccountID, from).
		Return(decimal.NewFromInt(-100), nil).Once()
	// Opening-batch movement dated at the period start sorts before the
	// same-day journal movement by reference.
	suite.mockLedgerRepo.On("ListOpeningMovements", ctx, suite.companyID, account.AccountID, from, to).
		Return([]domain.LedgerMovement{
			{Source: domain.MovementOpening, Date: date(2025, time.January, 1), Reference: "OB-2025-01", Debit: decimal.NewFromInt(400)},
		}, nil).Once()
	suite.mockLedgerRepo.On("ListJournalMovements", ctx, suite.companyID, account.AccountID, from, to).
		Return([]domain.LedgerMovement{
			{Source: domain.MovementJournal, Date: date(2025, time.January, 1), Reference: "ZV-9", Credit: decimal.NewFromInt(150)},
		}, nil).Once()

	report, err := suite.service.GetLedger(ctx, suite.companyID, dto.LedgerParams{
		AccountCode:       "1000",
		FromDate:          from,
		ToDate:            to,
		IncludeOpeningRow: true,
	})

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	suite.True(report.Rows[0].IsOpening)
	suite.True(report.Rows[0].Credit.Equal(decimal.NewFromInt(100)), "negative opening lands in the credit column")
	suite.Equal("OB-2025-01", report.Rows[1].Reference)
	suite.Equal("ZV-9", report.Rows[2].Reference)
	suite.True(report.Rows[2].RunningBalance.Equal(decimal.NewFromInt(150)))
	suite.True(report.Summary.ClosingBalance.Equal(decimal.NewFromInt(150)))
}

func (suite *LedgerServiceTestSuite) TestGetLedger_RejectsGroupAccount() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1", IsGroup: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()

	report, err := suite.service.GetLedger(ctx, suite.companyID, dto.LedgerParams{
		AccountID: account.AccountID,
		FromDate:  date(2025, time.January, 1),
		ToDate:    date(2025, time.January, 31),
	})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetLedger_RejectsMissingAccount() {
	ctx := context.Background()

	report, err := suite.service.GetLedger(ctx, suite.companyID, dto.LedgerParams{
		FromDate: date(2025, time.January, 1),
		ToDate:   date(2025, time.January, 31),
	})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetLedger_RejectsInvertedRange() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()

	report, err := suite.service.GetLedger(ctx, suite.companyID, dto.LedgerParams{
		AccountID: account.AccountID,
		FromDate:  date(2025, time.February, 1),
		ToDate:    date(2025, time.January, 1),
	})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListAccounts_ExcludeZeroDropsDormantAccounts() {
	ctx := context.Background()
	asOf := date(2025, time.June, 30)
	cash := domain.Account{AccountID: "acc-cash", Code: "1000", Name: "Cash", Classification: domain.Asset}
	loan := domain.Account{AccountID: "acc-loan", Code: "2000", Name: "Loan", Classification: domain.Liability}
	dormant := domain.Account{AccountID: "acc-dorm", Code: "3000", Name: "Dormant", Classification: domain.Equity}

	suite.mockAccountRepo.On("ListPostingAccounts", ctx, suite.companyID).
		Return([]domain.Account{cash, loan, dormant}, nil).Once()
	suite.mockLedgerRepo.On("JournalNetByAccount", ctx, suite.companyID, asOf).
		Return(map[string]decimal.Decimal{"acc-cash": decimal.NewFromInt(150), "acc-loan": decimal.NewFromInt(-80)}, nil).Once()
	suite.mockLedgerRepo.On("OpeningNetByAccount", ctx, suite.companyID, asOf).
		Return(map[string]decimal.Decimal{"acc-cash": decimal.NewFromInt(50)}, nil).Once()

	summaries, err := suite.service.ListAccounts(ctx, suite.companyID, asOf, true)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal("1000", summaries[0].Code)
	suite.True(summaries[0].Balance.Equal(decimal.NewFromInt(200)))
	suite.Equal("2000", summaries[1].Code)
	suite.True(summaries[1].Balance.Equal(decimal.NewFromInt(-80)))
}

func (suite *LedgerServiceTestSuite) TestListAccounts_KeepsZeroBalancesByDefault() {
	ctx := context.Background()
	asOf := date(2025, time.June, 30)
	dormant := domain.Account{AccountID: "acc-dorm", Code: "3000", Name: "Dormant"}

	suite.mockAccountRepo.On("ListPostingAccounts", ctx, suite.companyID).
		Return([]domain.Account{dormant}, nil).Once()
	suite.mockLedgerRepo.On("JournalNetByAccount", ctx, suite.companyID, asOf).
		Return(map[string]decimal.Decimal{}, nil).Once()
	suite.mockLedgerRepo.On("OpeningNetByAccount", ctx, suite.companyID, asOf).
		Return(map[string]decimal.Decimal{}, nil).Once()

	summaries, err := suite.service.ListAccounts(ctx, suite.companyID, asOf, false)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.True(summaries[0].Balance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestGetOpeningBalance_SumsBothSources() {
	ctx := context.Background()
	accountID := uuid.NewString()
	before := date(2025, time.March, 1)

	suite.mockLedgerRepo.On("JournalNetForAccount", ctx, suite.companyID, accountID, before).
		Return(decimal.NewFromInt(-25), nil).Once()
	suite.mockLedgerRepo.On("OpeningNetForAccount", ctx, suite.companyID, accountID, before).
		Return(decimal.NewFromInt(100), nil).Once()

	balance, err := suite.service.GetOpeningBalance(ctx, suite.companyID, accountID, before)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(75)))
}

func (suite *LedgerServiceTestSuite) TestGetLedgerByClassification_KeyedByCode() {
	ctx := context.Background()
	from := date(2025, time.January, 1)
	to := date(2025, time.December, 31)
	a := domain.Account{AccountID: "acc-a", Code: "4000", Classification: domain.Revenue}
	b := domain.Account{AccountID: "acc-b", Code: "4100", Classification: domain.Revenue}

	suite.mockAccountRepo.On("ListPostingAccountsByClassification", ctx, suite.companyID, domain.Revenue).
		Return([]domain.Account{a, b}, nil).Once()
	for _, acc := range []domain.Account{a, b} {
		suite.mockLedgerRepo.On("JournalNetForAccount", ctx, suite.companyID, acc.AccountID, from).
			Return(decimal.Zero, nil).Once()
		suite.mockLedgerRepo.On("OpeningNetForAccount", ctx, suite.companyID, acc.AccountID, from).
			Return(decimal.Zero, nil).Once()
		suite.mockLedgerRepo.On("ListOpeningMovements", ctx, suite.companyID, acc.AccountID, from, to).
			Return([]domain.LedgerMovement{}, nil).Once()
		suite.mockLedgerRepo.On("ListJournalMovements", ctx, suite.companyID, acc.AccountID, from, to).
			Return([]domain.LedgerMovement{}, nil).Once()
	}

	reports, err := suite.service.GetLedgerByClassification(ctx, suite.companyID, domain.Revenue, dto.LedgerParams{
		FromDate: from,
		ToDate:   to,
	})

	suite.Require().NoError(err)
	suite.Require().Len(reports, 2)
	suite.Contains(reports, "4000")
	suite.Contains(reports, "4100")
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
