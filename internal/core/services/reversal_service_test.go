package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portssvc "github.com/fchandiac/flow-store-sub001/internal/core/ports/services"
	"github.com/fchandiac/flow-store-sub001/internal/core/services"
	"github.com/fchandiac/flow-store-sub001/internal/dto"
)

// --- Mock TransactionService (as the recorder used by the reversal flow) ---
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

// --- Test Suite Setup ---
type ReversalServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockRecorder  *MockTransactionService
	mockPublisher *MockEventPublisher
	service       portssvc.ReversalSvcFacade
	companyID     string
	userID        string
	original      domain.Transaction
	originalLines []domain.TransactionLine
}

func (suite *ReversalServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockRecorder = new(MockTransactionService)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewReversalService(suite.mockTxnRepo, suite.mockRecorder, suite.mockPublisher)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	transactionID := uuid.NewString()
	suite.original = domain.Transaction{
		TransactionID:  transactionID,
		CompanyID:      suite.companyID,
		DocumentNumber: "VTA-00000042",
		Type:           domain.Sale,
		Status:         domain.StatusConfirmed,
		BranchID:       uuid.NewString(),
		PaymentMethod:  "CASH",
		Subtotal:       decimal.NewFromInt(1000),
		TaxAmount:      decimal.NewFromInt(190),
		Total:          decimal.NewFromInt(1190),
	}
	suite.originalLines = []domain.TransactionLine{
		{
			LineID:        uuid.NewString(),
			TransactionID: transactionID,
			LineNumber:    1,
			ItemName:      "Harina 1kg",
			SKU:           "HAR-001",
			Quantity:      decimal.NewFromInt(2),
			UnitPrice:     decimal.NewFromInt(500),
			TaxPercent:    decimal.NewFromInt(19),
			TaxAmount:     decimal.NewFromInt(190),
			Subtotal:      decimal.NewFromInt(1000),
			Total:         decimal.NewFromInt(1190),
		},
	}
}

func (suite *ReversalServiceTestSuite) expectOriginalLoaded() {
	ctx := context.Background()
	original := suite.original
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.original.TransactionID).Return(&original, nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionID", ctx, suite.original.TransactionID).Return(suite.originalLines, nil).Once()
}

// --- Test Cases ---

func (suite *ReversalServiceTestSuite) TestCancelTransaction_Success() {
	ctx := context.Background()
	suite.expectOriginalLoaded()

	var reversalReq dto.CreateTransactionRequest
	reversal := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		CompanyID:      suite.companyID,
		DocumentNumber: "DVV-00000001",
		Type:           domain.SaleReturn,
		Status:         domain.StatusConfirmed,
	}
	suite.mockRecorder.On("CreateTransaction", ctx, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			reversalReq = args.Get(2).(dto.CreateTransactionRequest)
		}).
		Return(reversal, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, suite.original.TransactionID, domain.StatusCancelled).Return(nil).Once()
	suite.mockPublisher.On("PublishTransactionCancelled", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	result, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "customer returned goods")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(reversal.TransactionID, result.TransactionID)

	// The reversal is the inverse type with the original's lines copied
	// verbatim: the sign flip is expressed through the type, not through
	// negated quantities.
	suite.Equal(domain.SaleReturn, reversalReq.Type)
	suite.Require().Len(reversalReq.Lines, 1)
	suite.True(reversalReq.Lines[0].Quantity.Equal(decimal.NewFromInt(2)))
	suite.True(reversalReq.Lines[0].UnitPrice.Equal(decimal.NewFromInt(500)))
	suite.Require().NotNil(reversalReq.ExternalReference)
	suite.Equal(suite.original.TransactionID, *reversalReq.ExternalReference)
	suite.Equal("customer returned goods", reversalReq.Metadata[domain.MetadataCancelReasonKey])
	suite.Equal(suite.original.DocumentNumber, reversalReq.Metadata["originalDocumentNumber"])

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, transactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_ForeignCompanyLooksMissing() {
	ctx := context.Background()
	original := suite.original
	original.CompanyID = uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.original.TransactionID).Return(&original, nil).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_AlreadyCancelled() {
	ctx := context.Background()
	original := suite.original
	original.Status = domain.StatusCancelled
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.original.TransactionID).Return(&original, nil).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrAlreadyCancelled)
	suite.mockRecorder.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_DraftNotCancellable() {
	ctx := context.Background()
	original := suite.original
	original.Status = domain.StatusDraft
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.original.TransactionID).Return(&original, nil).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrNotConfirmed)
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_TypeNotReversible() {
	ctx := context.Background()
	original := suite.original
	original.Type = domain.TransferIn
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.original.TransactionID).Return(&original, nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionID", ctx, suite.original.TransactionID).Return(suite.originalLines, nil).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNotReversible)
	suite.mockRecorder.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_ReversalFailureLeavesOriginalUntouched() {
	ctx := context.Background()
	suite.expectOriginalLoaded()

	suite.mockRecorder.On("CreateTransaction", ctx, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Return(nil, errors.New("db down")).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishTransactionCancelled", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestCancelTransaction_StatusFlipFailureSurfaces() {
	ctx := context.Background()
	suite.expectOriginalLoaded()

	reversal := &domain.Transaction{TransactionID: uuid.NewString(), Type: domain.SaleReturn}
	suite.mockRecorder.On("CreateTransaction", ctx, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Return(reversal, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, suite.original.TransactionID, domain.StatusCancelled).
		Return(errors.New("connection reset")).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, suite.original.TransactionID, suite.userID, "reason")

	suite.Require().Error(err)
	suite.Contains(err.Error(), reversal.TransactionID)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishTransactionCancelled", mock.Anything, mock.Anything, mock.Anything)
}

func TestReversalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}
