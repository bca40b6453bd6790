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

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a read-only repository over the chart of
// accounts.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// ListAccountsByCompany retrieves every account of a company ordered by code.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.AccountingAccount, error) {
	query := `
		SELECT account_id, company_id, code, name, account_type, parent_account_id,
		       is_active, created_at, created_by
		FROM accounting_accounts
		WHERE company_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.AccountingAccount{}
	for rows.Next() {
		var m models.AccountingAccount
		err := rows.Scan(
			&m.AccountID,
			&m.CompanyID,
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.ParentAccountID,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row for company "+companyID, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows for company "+companyID, err)
	}
	return accounts, nil
}
