package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portsrepo "github.com/fchandiac/flow-store-sub001/internal/core/ports/repositories"
	portssvc "github.com/fchandiac/flow-store-sub001/internal/core/ports/services"
	"github.com/fchandiac/flow-store-sub001/internal/dto"
	"github.com/fchandiac/flow-store-sub001/internal/middleware"
	"github.com/fchandiac/flow-store-sub001/internal/utils/accounting"
)

var (
	ErrNoLines             = errors.New("transaction must have at least one line")
	ErrUnknownType         = errors.New("unknown transaction type")
	ErrCashSessionMissing  = errors.New("cash session not found")
	ErrCashSessionClosed   = errors.New("cash session is closed")
	ErrNonPositiveQuantity = errors.New("line quantity must be positive")
)

// transactionService records immutable transactions with computed totals.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	sessionRepo portsrepo.CashSessionRepositoryFacade
	publisher   portssvc.TransactionEventPublisher
}

// NewTransactionService creates the transaction recorder. The publisher is
// optional; a nil publisher disables out-of-band notification.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, sessionRepo portsrepo.CashSessionRepositoryFacade, publisher portssvc.TransactionEventPublisher) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		sessionRepo: sessionRepo,
		publisher:   publisher,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates and atomically persists a transaction plus its
// lines. Header totals are derived exclusively from the lines; any totals a
// caller might compute are ignored by construction since the request does
// not carry them.
func (s *transactionService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownType, req.Type)
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoLines)
	}

	if req.Type == domain.Sale && req.CashSessionID != nil {
		if err := s.checkCashSession(ctx, companyID, *req.CashSessionID); err != nil {
			logger.Warn("Cash session check failed", slog.String("cash_session_id", *req.CashSessionID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	lines := make([]domain.TransactionLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if !lineReq.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: %w for line %d", apperrors.ErrValidation, ErrNonPositiveQuantity, i+1)
		}
		line := domain.TransactionLine{
			LineID:          uuid.NewString(),
			TransactionID:   transactionID,
			LineNumber:      i + 1,
			ItemName:        lineReq.ItemName,
			SKU:             lineReq.SKU,
			VariantLabel:    lineReq.VariantLabel,
			Quantity:        lineReq.Quantity,
			UnitPrice:       lineReq.UnitPrice,
			UnitCost:        lineReq.UnitCost,
			DiscountPercent: lineReq.DiscountPercent,
			DiscountAmount:  lineReq.DiscountAmount,
			TaxPercent:      lineReq.TaxPercent,
			TaxAmount:       lineReq.TaxAmount,
			TaxID:           lineReq.TaxID,
			CreationFields: domain.CreationFields{
				CreatedAt: now,
				CreatedBy: creatorUserID,
			},
		}
		accounting.ComputeLineAmounts(&line)
		lines[i] = line
	}

	subtotal, discount, tax, total := accounting.SumTransactionAmounts(lines)

	txn := domain.Transaction{
		TransactionID:     transactionID,
		CompanyID:         companyID,
		Type:              req.Type,
		Status:            domain.StatusConfirmed,
		BranchID:          req.BranchID,
		PointOfSaleID:     req.PointOfSaleID,
		CashSessionID:     req.CashSessionID,
		StorageID:         req.StorageID,
		CounterpartID:     req.CounterpartID,
		Subtotal:          subtotal,
		DiscountAmount:    discount,
		TaxAmount:         tax,
		Total:             total,
		PaymentMethod:     req.PaymentMethod,
		ExpenseCategoryID: req.ExpenseCategoryID,
		ExternalReference: req.ExternalReference,
		Metadata:          req.Metadata,
		CreationFields: domain.CreationFields{
			CreatedAt: now,
			CreatedBy: creatorUserID,
		},
	}
	// An empty document number tells the repository to allocate the next one
	// from the per-type counter, inside the same unit of work as the insert.
	if req.DocumentNumber != nil && *req.DocumentNumber != "" {
		txn.DocumentNumber = *req.DocumentNumber
	}

	persisted, err := s.txnRepo.SaveTransaction(ctx, txn, lines)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("company_id", companyID), slog.String("type", string(req.Type)))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", persisted.TransactionID),
		slog.String("document_number", persisted.DocumentNumber),
		slog.String("type", string(persisted.Type)),
		slog.Int("line_count", len(lines)),
	)

	s.notifyCreated(ctx, logger, *persisted)
	return persisted, nil
}

// checkCashSession verifies the referenced session exists, belongs to the
// company and is still open.
func (s *transactionService) checkCashSession(ctx context.Context, companyID, sessionID string) error {
	if s.sessionRepo == nil {
		return fmt.Errorf("%w: %w %s", apperrors.ErrValidation, ErrCashSessionMissing, sessionID)
	}
	session, err := s.sessionRepo.FindCashSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %w %s", apperrors.ErrValidation, ErrCashSessionMissing, sessionID)
		}
		return fmt.Errorf("failed to check cash session %s: %w", sessionID, err)
	}
	if session.CompanyID != companyID {
		return fmt.Errorf("%w: %w %s", apperrors.ErrValidation, ErrCashSessionMissing, sessionID)
	}
	if !session.IsOpen() {
		return fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrCashSessionClosed, sessionID)
	}
	return nil
}

// GetTransactionByID retrieves a transaction together with its lines.
func (s *transactionService) GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.CompanyID != companyID {
		// Obscure existence across companies
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.txnRepo.FindLinesByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to fetch lines for transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to retrieve lines for transaction %s: %w", transactionID, apperrors.ErrInternal)
	}
	txn.Lines = lines

	return txn, nil
}

// ListTransactions retrieves a cursor-paginated page of a company's
// transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// notifyCreated publishes the creation event. Publishing is out-of-band and
// best effort: a failure is logged, never surfaced to the caller.
func (s *transactionService) notifyCreated(ctx context.Context, logger *slog.Logger, txn domain.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionCreated(ctx, txn); err != nil {
		logger.Warn("Failed to publish transaction created event", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
	}
}
