package repositories

import (
	"context"
	"time"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

// TransactionReader defines read operations over the append-only
// transaction log.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindLinesByTransactionID retrieves all lines of one transaction,
	// ordered by line number.
	FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error)

	// FindLinesByTransactionIDs retrieves lines for multiple transactions in
	// one batch, grouped by transaction ID.
	FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error)

	// ListConfirmedTransactions retrieves CONFIRMED transactions of the given
	// types within the optional inclusive date window, ordered by creation
	// time. A positive limit caps the result.
	ListConfirmedTransactions(ctx context.Context, companyID string, types []domain.TransactionType, from, to *time.Time, limit int) ([]domain.Transaction, error)

	// ListTransactionsByCompany retrieves a paginated list of transactions
	// using token-based pagination. It returns the transactions, a token for
	// the next page, and an error.
	ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the write operations of the immutable log.
type TransactionWriter interface {
	// SaveTransaction persists a transaction header and all of its lines in
	// one atomic unit of work. When the transaction carries no document
	// number, one is allocated from the per-type counter inside the same
	// database transaction. The persisted transaction is returned.
	SaveTransaction(ctx context.Context, txn domain.Transaction, lines []domain.TransactionLine) (*domain.Transaction, error)

	// UpdateTransactionStatus applies the single sanctioned mutation of the
	// log: the status transition performed by the reversal flow.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
