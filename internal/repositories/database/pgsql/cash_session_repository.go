package pgsql

import (
	"context"
	"errors"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portsrepo "github.com/fchandiac/flow-store-sub001/internal/core/ports/repositories"
	"github.com/fchandiac/flow-store-sub001/internal/models"
	"github.com/fchandiac/flow-store-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCashSessionRepository struct {
	BaseRepository
}

// NewCashSessionRepository creates a read-only repository over cash
// sessions. Sessions are opened and closed by the point-of-sale workflow
// outside this core.
func NewCashSessionRepository(pool *pgxpool.Pool) portsrepo.CashSessionRepositoryFacade {
	return &PgxCashSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashSessionRepositoryFacade = (*PgxCashSessionRepository)(nil)

// FindCashSessionByID retrieves a cash session by its identifier.
func (r *PgxCashSessionRepository) FindCashSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	query := `
		SELECT session_id, company_id, point_of_sale_id, status, opened_at, closed_at
		FROM cash_sessions
		WHERE session_id = $1;
	`
	var m models.CashSession
	err := r.Pool.QueryRow(ctx, query, sessionID).Scan(
		&m.SessionID,
		&m.CompanyID,
		&m.PointOfSaleID,
		&m.Status,
		&m.OpenedAt,
		&m.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash session "+sessionID, err)
	}

	session := mapping.ToDomainCashSession(m)
	return &session, nil
}
