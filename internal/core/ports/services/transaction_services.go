package services

import (
	"context"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	"github.com/fchandiac/flow-store-sub001/internal/dto"
)

// TransactionSvcFacade records and reads immutable transactions.
type TransactionSvcFacade interface {
	// CreateTransaction validates the input, computes all monetary figures
	// from the lines, resolves a document number and persists header plus
	// lines atomically.
	CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its lines.
	GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a cursor-paginated page of a company's
	// transactions, newest first.
	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// ReversalSvcFacade cancels transactions by emitting inverse transactions.
type ReversalSvcFacade interface {
	// CancelTransaction creates a reversal of the given transaction and, once
	// the reversal is persisted, flips the original's status to CANCELLED.
	CancelTransaction(ctx context.Context, companyID string, transactionID string, actingUserID string, reason string) (*domain.Transaction, error)
}

// LedgerSvcFacade derives double-entry postings and balances from the
// immutable log.
type LedgerSvcFacade interface {
	// BuildLedger recomputes the full ledger snapshot for the selected
	// window. Two calls over unchanged data return identical results.
	BuildLedger(ctx context.Context, params dto.BuildLedgerParams) (*dto.LedgerComputationResult, error)

	// ListAccounts returns the company's chart of accounts.
	ListAccounts(ctx context.Context, companyID string) ([]domain.AccountingAccount, error)

	// ListRules returns the company's active accounting rules.
	ListRules(ctx context.Context, companyID string) ([]domain.AccountingRule, error)
}

// TransactionEventPublisher notifies downstream consumers (reports,
// revalidation) out-of-band. Publishing is best effort: failures are logged
// by callers and never fail the write that triggered them.
type TransactionEventPublisher interface {
	PublishTransactionCreated(ctx context.Context, txn domain.Transaction) error
	PublishTransactionCancelled(ctx context.Context, original domain.Transaction, reversal domain.Transaction) error
}
