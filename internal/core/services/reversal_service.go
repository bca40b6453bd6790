package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portsrepo "github.com/fchandiac/flow-store-sub001/internal/core/ports/repositories"
	portssvc "github.com/fchandiac/flow-store-sub001/internal/core/ports/services"
	"github.com/fchandiac/flow-store-sub001/internal/dto"
	"github.com/fchandiac/flow-store-sub001/internal/middleware"
)

var (
	ErrAlreadyCancelled = errors.New("transaction is already cancelled")
	ErrNotReversible    = errors.New("transaction type cannot be reversed")
	ErrNotConfirmed     = errors.New("only confirmed transactions can be cancelled")
)

// reversalService cancels transactions by emitting inverse transactions.
// The original record is never rewritten: the reversal is a new immutable
// transaction, and the only mutation is the original's status flip once the
// reversal has been persisted.
type reversalService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	recorder  portssvc.TransactionSvcFacade
	publisher portssvc.TransactionEventPublisher
}

// NewReversalService creates the reversal engine. The publisher is optional.
func NewReversalService(txnRepo portsrepo.TransactionRepositoryFacade, recorder portssvc.TransactionSvcFacade, publisher portssvc.TransactionEventPublisher) portssvc.ReversalSvcFacade {
	return &reversalService{
		txnRepo:   txnRepo,
		recorder:  recorder,
		publisher: publisher,
	}
}

var _ portssvc.ReversalSvcFacade = (*reversalService)(nil)

// CancelTransaction reverses a confirmed transaction. The reversal copies
// every original line's quantity and price fields verbatim; the sign of the
// movement is expressed through the reversal type, not through negated
// quantities.
func (s *reversalService) CancelTransaction(ctx context.Context, companyID string, transactionID string, actingUserID string, reason string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, originalLines, err := s.loadReversibleTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}

	reversalType, ok := original.Type.ReversalType()
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrNotReversible, original.Type)
	}

	lineReqs := make([]dto.CreateTransactionLineRequest, len(originalLines))
	for i, line := range originalLines {
		lineReqs[i] = dto.CreateTransactionLineRequest{
			ItemName:        line.ItemName,
			SKU:             line.SKU,
			VariantLabel:    line.VariantLabel,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			UnitCost:        line.UnitCost,
			DiscountPercent: line.DiscountPercent,
			DiscountAmount:  line.DiscountAmount,
			TaxPercent:      line.TaxPercent,
			TaxAmount:       line.TaxAmount,
			TaxID:           line.TaxID,
		}
	}

	reversalReq := dto.CreateTransactionRequest{
		Type:              reversalType,
		BranchID:          original.BranchID,
		PointOfSaleID:     original.PointOfSaleID,
		CashSessionID:     original.CashSessionID,
		StorageID:         original.StorageID,
		CounterpartID:     original.CounterpartID,
		PaymentMethod:     original.PaymentMethod,
		ExpenseCategoryID: original.ExpenseCategoryID,
		ExternalReference: &original.TransactionID,
		Metadata: domain.Metadata{
			domain.MetadataCancelReasonKey: reason,
			"originalDocumentNumber":       original.DocumentNumber,
		},
		Lines: lineReqs,
	}
	if taxID, found := original.TaxID(); found {
		reversalReq.Metadata[domain.MetadataTaxIDKey] = taxID
	}

	// Persist the reversal first; a failure here must leave the original's
	// status untouched.
	reversal, err := s.recorder.CreateTransaction(ctx, companyID, reversalReq, actingUserID)
	if err != nil {
		logger.Error("Failed to persist reversal transaction", slog.String("original_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist reversal for transaction %s: %w", transactionID, err)
	}

	if err := original.MarkCancelled(); err != nil {
		// Status was revalidated at load time; reaching this means the
		// original changed underneath us.
		logger.Error("Original transaction no longer cancellable", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, err.Error())
	}
	if err := s.txnRepo.UpdateTransactionStatus(ctx, original.TransactionID, original.Status); err != nil {
		logger.Error("Failed to flip original transaction status after reversal", slog.String("transaction_id", transactionID), slog.String("reversal_id", reversal.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("reversal %s persisted but cancelling original %s failed: %w", reversal.TransactionID, transactionID, err)
	}

	logger.Info("Transaction cancelled",
		slog.String("transaction_id", transactionID),
		slog.String("reversal_id", reversal.TransactionID),
		slog.String("reversal_document", reversal.DocumentNumber),
	)

	s.notifyCancelled(ctx, logger, *original, *reversal)
	return reversal, nil
}

// loadReversibleTransaction fetches the original transaction and its lines,
// rejecting anything that is missing, foreign, already cancelled or not yet
// confirmed.
func (s *reversalService) loadReversibleTransaction(ctx context.Context, companyID, transactionID string) (*domain.Transaction, []domain.TransactionLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch transaction for cancellation", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, nil, fmt.Errorf("failed to retrieve transaction %s: %w", transactionID, err)
	}
	if original.CompanyID != companyID {
		return nil, nil, apperrors.ErrNotFound
	}

	switch original.Status {
	case domain.StatusCancelled:
		return nil, nil, fmt.Errorf("%w: %w: %s", apperrors.ErrConflict, ErrAlreadyCancelled, transactionID)
	case domain.StatusConfirmed:
		// reversible
	default:
		return nil, nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrNotConfirmed, original.Status)
	}

	lines, err := s.txnRepo.FindLinesByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to fetch lines for cancellation", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, nil, fmt.Errorf("failed to retrieve lines for transaction %s: %w", transactionID, err)
	}

	return original, lines, nil
}

func (s *reversalService) notifyCancelled(ctx context.Context, logger *slog.Logger, original, reversal domain.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionCancelled(ctx, original, reversal); err != nil {
		logger.Warn("Failed to publish transaction cancelled event", slog.String("transaction_id", original.TransactionID), slog.String("error", err.Error()))
	}
}
