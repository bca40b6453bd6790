package pgsql

import (
	"context"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portsrepo "github.com/fchandiac/flow-store-sub001/internal/core/ports/repositories"
	"github.com/fchandiac/flow-store-sub001/internal/models"
	"github.com/fchandiac/flow-store-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRuleRepository struct {
	BaseRepository
}

// NewRuleRepository creates a read-only repository over the accounting
// rule set.
func NewRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

// ListActiveRulesByCompany retrieves all active rules of a company ordered
// by priority then rule ID for deterministic evaluation.
func (r *PgxRuleRepository) ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.AccountingRule, error) {
	query := `
		SELECT rule_id, company_id, name, scope, transaction_type, payment_method,
		       tax_id, expense_category_id, debit_account_id, credit_account_id,
		       priority, is_active, created_at, created_by
		FROM accounting_rules
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY priority, rule_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rules for company "+companyID, err)
	}
	defer rows.Close()

	rules := []domain.AccountingRule{}
	for rows.Next() {
		var m models.AccountingRule
		err := rows.Scan(
			&m.RuleID,
			&m.CompanyID,
			&m.Name,
			&m.Scope,
			&m.TransactionType,
			&m.PaymentMethod,
			&m.TaxID,
			&m.ExpenseCategoryID,
			&m.DebitAccountID,
			&m.CreditAccountID,
			&m.Priority,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rule row for company "+companyID, err)
		}
		rules = append(rules, mapping.ToDomainRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rule rows for company "+companyID, err)
	}
	return rules, nil
}
