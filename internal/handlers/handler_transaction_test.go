package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portssvc "github.com/fchandiac/flow-store-sub001/internal/core/ports/services"
	"github.com/fchandiac/flow-store-sub001/internal/dto"
	"github.com/fchandiac/flow-store-sub001/internal/handlers"
	"github.com/fchandiac/flow-store-sub001/internal/middleware"
	"github.com/fchandiac/flow-store-sub001/internal/platform/config"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

var _ portssvc.ReversalSvcFacade = (*MockReversalService)(nil)

func (m *MockReversalService) CancelTransaction(ctx context.Context, companyID string, transactionID string, actingUserID string, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, actingUserID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) BuildLedger(ctx context.Context, params dto.BuildLedgerParams) (*dto.LedgerComputationResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LedgerComputationResult), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, companyID string) ([]domain.AccountingAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingAccount), args.Error(1)
}

func (m *MockLedgerService) ListRules(ctx context.Context, companyID string) ([]domain.AccountingRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingRule), args.Error(1)
}

// --- Test Suite Setup ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTransaction *MockTransactionService
	mockReversal    *MockReversalService
	mockLedger      *MockLedgerService
	companyID       string
	userID          string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockTransaction = new(MockTransactionService)
	suite.mockReversal = new(MockReversalService)
	suite.mockLedger = new(MockLedgerService)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	suite.router.Use(middleware.UserContextMiddleware())
	handlers.RegisterRoutes(suite.router, &config.Config{}, &portssvc.ServiceContainer{
		Transaction: suite.mockTransaction,
		Reversal:    suite.mockReversal,
		Ledger:      suite.mockLedger,
	})
}

func (suite *TransactionHandlerTestSuite) performRequest(method, path string, body any, withUser bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if withUser {
		req.Header.Set("X-User-ID", suite.userID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]any {
	return map[string]any{
		"type":          "SALE",
		"branchID":      uuid.NewString(),
		"paymentMethod": "CASH",
		"lines": []map[string]any{
			{
				"itemName":  "Harina 1kg",
				"sku":       "HAR-001",
				"quantity":  "2",
				"unitPrice": "500",
			},
		},
	}
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	persisted := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		CompanyID:      suite.companyID,
		DocumentNumber: "VTA-00000001",
		Type:           domain.Sale,
		Status:         domain.StatusConfirmed,
		Total:          decimal.NewFromInt(1000),
	}
	suite.mockTransaction.On("CreateTransaction", mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Return(persisted, nil).Once()

	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/transactions", suite.companyID), validCreateBody(), true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("VTA-00000001", resp.DocumentNumber)
	suite.mockTransaction.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingUserHeader() {
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/transactions", suite.companyID), validCreateBody(), false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransaction.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InvalidBody() {
	body := validCreateBody()
	delete(body, "lines")

	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/transactions", suite.companyID), body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrorFromService() {
	suite.mockTransaction.On("CreateTransaction", mock.Anything, suite.companyID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: bad input", apperrors.ErrValidation)).Once()

	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/transactions", suite.companyID), validCreateBody(), true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()
	suite.mockTransaction.On("GetTransactionByID", mock.Anything, suite.companyID, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/transactions/%s", suite.companyID, transactionID), nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCancelTransaction_Success() {
	transactionID := uuid.NewString()
	reversal := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		DocumentNumber: "DVV-00000001",
		Type:           domain.SaleReturn,
	}
	suite.mockReversal.On("CancelTransaction", mock.Anything, suite.companyID, transactionID, suite.userID, "damaged goods").
		Return(reversal, nil).Once()

	w := suite.performRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/transactions/%s/cancel", suite.companyID, transactionID),
		dto.CancelTransactionRequest{Reason: "damaged goods"}, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("DVV-00000001", resp.DocumentNumber)
	suite.mockReversal.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCancelTransaction_Conflict() {
	transactionID := uuid.NewString()
	suite.mockReversal.On("CancelTransaction", mock.Anything, suite.companyID, transactionID, suite.userID, "twice").
		Return(nil, fmt.Errorf("%w: already cancelled", apperrors.ErrConflict)).Once()

	w := suite.performRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/transactions/%s/cancel", suite.companyID, transactionID),
		dto.CancelTransactionRequest{Reason: "twice"}, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCancelTransaction_MissingReason() {
	w := suite.performRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/transactions/%s/cancel", suite.companyID, uuid.NewString()),
		map[string]any{}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReversal.AssertNotCalled(suite.T(), "CancelTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestBuildLedger_Success() {
	suite.mockLedger.On("BuildLedger", mock.Anything, mock.MatchedBy(func(params dto.BuildLedgerParams) bool {
		return params.CompanyID == suite.companyID && params.From != nil && params.To == nil
	})).Return(&dto.LedgerComputationResult{
		BalanceByAccount: map[string]decimal.Decimal{"1100": decimal.NewFromInt(100)},
	}, nil).Once()

	w := suite.performRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/ledger?from=2026-03-01T00:00:00Z", suite.companyID), nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestBuildLedger_BadTimestamp() {
	w := suite.performRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/ledger?from=yesterday", suite.companyID), nil, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "BuildLedger", mock.Anything, mock.Anything)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
