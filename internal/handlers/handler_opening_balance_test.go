package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/slms-erp/slms_backend/internal/apperrors"
	"github.com/slms-erp/slms_backend/internal/core/domain"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/handlers"
	"github.com/slms-erp/slms_backend/pkg/config"
)

// --- Mock OpeningBalanceService ---
type MockOpeningBalanceService struct {
	mock.Mock
}

func (m *MockOpeningBalanceService) AddLine(ctx context.Context, companyID string, req dto.AddOpeningBalanceLineRequest, userID string) (*domain.OpeningBalanceLine, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceLine), args.Error(1)
}
func (m *MockOpeningBalanceService) PostBatch(ctx context.Context, companyID, batchID, userID string) (*domain.OpeningBalanceBatch, error) {
	args := m.Called(ctx, companyID, batchID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceBatch), args.Error(1)
}
func (m *MockOpeningBalanceService) ReverseBatch(ctx context.Context, companyID, batchID, userID string) (*domain.OpeningBalanceBatch, error) {
	args := m.Called(ctx, companyID, batchID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceBatch), args.Error(1)
}
func (m *MockOpeningBalanceService) GetBatch(ctx context.Context, companyID, batchID string) (*domain.OpeningBalanceBatch, []domain.OpeningBalanceLine, error) {
	args := m.Called(ctx, companyID, batchID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.OpeningBalanceBatch), args.Get(1).([]domain.OpeningBalanceLine), args.Error(2)
}
func (m *MockOpeningBalanceService) ListBatches(ctx context.Context, companyID string, params dto.ListBatchesParams) ([]domain.OpeningBalanceBatch, *string, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.OpeningBalanceBatch), next, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.OpeningBalanceSvcFacade = (*MockOpeningBalanceService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, companyID string, asOf time.Time, excludeZero bool) ([]domain.AccountSummary, error) {
	args := m.Called(ctx, companyID, asOf, excludeZero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}
func (m *MockLedgerService) GetOpeningBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, before)
	if args.Get(0) == nil {
		return decimal.Decimal{}, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) GetLedger(ctx context.Context, companyID string, params dto.LedgerParams) (*domain.LedgerReport, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerReport), args.Error(1)
}
func (m *MockLedgerService) GetLedgerByClassification(ctx context.Context, companyID string, classification domain.AccountClassification, params dto.LedgerParams) (map[string]*domain.LedgerReport, error) {
	args := m.Called(ctx, companyID, classification, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.LedgerReport), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock IncomeStatementService ---
type MockIncomeStatementService struct {
	mock.Mock
}

func (m *MockIncomeStatementService) GetIncomeStatement(ctx context.Context, companyID string, params dto.IncomeStatementParams) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}

var _ portssvc.IncomeStatementSvcFacade = (*MockIncomeStatementService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, []domain.Transaction, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Journal), args.Get(1).([]domain.Transaction), args.Error(2)
}
func (m *MockJournalService) GetJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, []domain.Transaction, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Journal), args.Get(1).([]domain.Transaction), args.Error(2)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type OpeningBalanceHandlerTestSuite struct {
	suite.Suite
	router                    *gin.Engine
	mockOpeningBalanceService *MockOpeningBalanceService
	jwtSecret                 string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *OpeningBalanceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "slms-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *OpeningBalanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockOpeningBalanceService = new(MockOpeningBalanceService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger routes in tests
	}
	container := &portssvc.ServiceContainer{
		OpeningBalance:  suite.mockOpeningBalanceService,
		Ledger:          new(MockLedgerService),
		IncomeStatement: new(MockIncomeStatementService),
		Journal:         new(MockJournalService),
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *OpeningBalanceHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OpeningBalanceHandlerTestSuite) TestAddLine_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.AddOpeningBalanceLineRequest{
		BatchNo:     "OB-2025-01",
		Period:      "2025-01",
		AccountCode: "1000",
		Debit:       decimal.NewFromInt(500),
	}
	expectedLine := &domain.OpeningBalanceLine{
		LineID:       uuid.NewString(),
		BatchID:      uuid.NewString(),
		LineNo:       1,
		AccountID:    uuid.NewString(),
		CurrencyCode: "USD",
		Debit:        decimal.NewFromInt(500),
	}

	suite.mockOpeningBalanceService.On("AddLine",
		mock.Anything,
		companyID,
		mock.MatchedBy(func(r dto.AddOpeningBalanceLineRequest) bool {
			return r.BatchNo == reqBody.BatchNo && r.AccountCode == reqBody.AccountCode
		}),
		userID,
	).Return(expectedLine, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/lines", companyID)
	w := suite.doRequest(http.MethodPost, url, suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.OpeningBalanceLineResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Equal(expectedLine.LineID, responseBody.LineID)
	suite.Equal(1, responseBody.LineNo)
	suite.True(responseBody.Debit.Equal(decimal.NewFromInt(500)))

	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestAddLine_MissingToken() {
	companyID := uuid.NewString()
	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/lines", companyID)

	w := suite.doRequest(http.MethodPost, url, "", dto.AddOpeningBalanceLineRequest{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOpeningBalanceService.AssertNotCalled(suite.T(), "AddLine")
}

func (suite *OpeningBalanceHandlerTestSuite) TestAddLine_ValidationError() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockOpeningBalanceService.On("AddLine", mock.Anything, companyID, mock.Anything, userID).
		Return(nil, fmt.Errorf("%w: debit and credit cannot both be positive", apperrors.ErrValidation)).Once()

	reqBody := dto.AddOpeningBalanceLineRequest{
		BatchNo:     "OB-2025-01",
		Period:      "2025-01",
		AccountCode: "1000",
		Debit:       decimal.NewFromInt(100),
		Credit:      decimal.NewFromInt(100),
	}
	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/lines", companyID)
	w := suite.doRequest(http.MethodPost, url, suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

// Two concurrent adds to the same batch can race on the next line number; the
// losing insert surfaces ErrDuplicate and the client gets a conflict it can
// retry, not an internal error.
func (suite *OpeningBalanceHandlerTestSuite) TestAddLine_ConcurrentLineNumberConflict() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockOpeningBalanceService.On("AddLine", mock.Anything, companyID, mock.Anything, userID).
		Return(nil, fmt.Errorf("%w: line 3 already exists in batch OB-2025-01", apperrors.ErrDuplicate)).Once()

	reqBody := dto.AddOpeningBalanceLineRequest{
		BatchNo:     "OB-2025-01",
		Period:      "2025-01",
		AccountCode: "1000",
		Debit:       decimal.NewFromInt(250),
	}
	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/lines", companyID)
	w := suite.doRequest(http.MethodPost, url, suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestPostBatch_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	batchID := uuid.NewString()
	now := time.Now()

	postedBatch := &domain.OpeningBalanceBatch{
		BatchID:  batchID,
		BatchNo:  "OB-2025-01",
		Status:   domain.BatchPosted,
		PostedAt: &now,
		PostedBy: userID,
	}
	suite.mockOpeningBalanceService.On("PostBatch", mock.Anything, companyID, batchID, userID).
		Return(postedBatch, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/%s/post", companyID, batchID)
	w := suite.doRequest(http.MethodPost, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.OpeningBalanceBatchResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Equal(string(domain.BatchPosted), responseBody.Status)
	suite.Equal(userID, responseBody.PostedBy)

	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestPostBatch_UnbalancedConflict() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	batchID := uuid.NewString()

	suite.mockOpeningBalanceService.On("PostBatch", mock.Anything, companyID, batchID, userID).
		Return(nil, apperrors.ErrBatchUnbalanced).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/%s/post", companyID, batchID)
	w := suite.doRequest(http.MethodPost, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestReverseBatch_NotPostedConflict() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	batchID := uuid.NewString()

	suite.mockOpeningBalanceService.On("ReverseBatch", mock.Anything, companyID, batchID, userID).
		Return(nil, apperrors.ErrBatchNotPosted).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/%s/reverse", companyID, batchID)
	w := suite.doRequest(http.MethodPost, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestGetBatch_NotFound() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	batchID := uuid.NewString()

	suite.mockOpeningBalanceService.On("GetBatch", mock.Anything, companyID, batchID).
		Return(nil, nil, apperrors.NewNotFoundError("batch not found")).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances/%s", companyID, batchID)
	w := suite.doRequest(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestListBatches_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	batches := []domain.OpeningBalanceBatch{
		{BatchID: uuid.NewString(), BatchNo: "OB-2025-01", Status: domain.BatchPosted},
		{BatchID: uuid.NewString(), BatchNo: "OB-2025-02", Status: domain.BatchDraft},
	}
	next := "some-cursor"
	suite.mockOpeningBalanceService.On("ListBatches",
		mock.Anything,
		companyID,
		mock.MatchedBy(func(p dto.ListBatchesParams) bool { return p.Limit == 10 }),
	).Return(batches, &next, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/opening-balances?limit=10", companyID)
	w := suite.doRequest(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListBatchesResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Len(responseBody.Batches, 2)
	suite.Require().NotNil(responseBody.NextToken)
	suite.Equal(next, *responseBody.NextToken)

	suite.mockOpeningBalanceService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestOpeningBalanceHandler(t *testing.T) {
	suite.Run(t, new(OpeningBalanceHandlerTestSuite))
}
