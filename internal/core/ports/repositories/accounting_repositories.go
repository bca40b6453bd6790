package repositories

import (
	"context"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

// AccountRepositoryFacade provides read access to the company-scoped chart
// of accounts. Accounts are configured outside this core.
type AccountRepositoryFacade interface {
	// ListAccountsByCompany retrieves every account of a company, active or
	// not, ordered by code.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.AccountingAccount, error)
}

// RuleRepositoryFacade provides read access to the accounting rule set.
// Rules are configured outside this core.
type RuleRepositoryFacade interface {
	// ListActiveRulesByCompany retrieves all active rules of a company,
	// ordered by priority then rule ID for deterministic evaluation.
	ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.AccountingRule, error)
}

// CashSessionRepositoryFacade provides read access to point-of-sale cash
// sessions, an external collaborator checked during sale recording.
type CashSessionRepositoryFacade interface {
	// FindCashSessionByID retrieves a cash session by its identifier.
	FindCashSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)
}
