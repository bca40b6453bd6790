package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fchandiac/flow-store-sub001/internal/apperrors"
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portsrepo "github.com/fchandiac/flow-store-sub001/internal/core/ports/repositories"
	"github.com/fchandiac/flow-store-sub001/internal/models"
	"github.com/fchandiac/flow-store-sub001/internal/utils/docnumber"
	"github.com/fchandiac/flow-store-sub001/internal/utils/mapping"
	"github.com/fchandiac/flow-store-sub001/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxTransactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for the append-only
// transaction log.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, company_id, document_number, type, status, branch_id,
	point_of_sale_id, cash_session_id, storage_id, counterpart_id,
	subtotal, discount_amount, tax_amount, total, payment_method,
	expense_category_id, external_reference, metadata, created_at, created_by`

// SaveTransaction persists the header and all lines within one database
// transaction. When no document number is supplied, the per-type counter
// row is incremented in the same transaction, so concurrent writers can
// neither duplicate nor skip numbers and a rollback releases the number
// together with the insert.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, lines []domain.TransactionLine) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits successfully
	defer r.Rollback(ctx, tx)

	if txn.DocumentNumber == "" {
		number, err := r.nextDocumentNumber(ctx, tx, txn.CompanyID, txn.Type)
		if err != nil {
			return nil, err
		}
		txn.DocumentNumber = docnumber.Format(txn.Type.DocumentPrefix(), number)
	}

	modelTxn := mapping.ToModelTransaction(txn)
	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.CompanyID,
		modelTxn.DocumentNumber,
		modelTxn.Type,
		modelTxn.Status,
		modelTxn.BranchID,
		modelTxn.PointOfSaleID,
		modelTxn.CashSessionID,
		modelTxn.StorageID,
		modelTxn.CounterpartID,
		modelTxn.Subtotal,
		modelTxn.DiscountAmount,
		modelTxn.TaxAmount,
		modelTxn.Total,
		modelTxn.PaymentMethod,
		modelTxn.ExpenseCategoryID,
		modelTxn.ExternalReference,
		modelTxn.Metadata,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, "document number "+modelTxn.DocumentNumber+" already exists", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO transaction_lines (
			line_id, transaction_id, line_number, item_name, sku, variant_label,
			quantity, unit_price, unit_cost, discount_percent, discount_amount,
			tax_percent, tax_amount, tax_id, subtotal, total, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelTransactionLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.TransactionID,
			modelLine.LineNumber,
			modelLine.ItemName,
			modelLine.SKU,
			modelLine.VariantLabel,
			modelLine.Quantity,
			modelLine.UnitPrice,
			modelLine.UnitCost,
			modelLine.DiscountPercent,
			modelLine.DiscountAmount,
			modelLine.TaxPercent,
			modelLine.TaxAmount,
			modelLine.TaxID,
			modelLine.Subtotal,
			modelLine.Total,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	// Close the batch results to surface errors from each command
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for transaction "+modelTxn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	persisted := mapping.ToDomainTransaction(modelTxn)
	return &persisted, nil
}

// nextDocumentNumber increments the per-company, per-type counter row and
// returns the new value. The upsert runs inside the caller's transaction:
// the row lock it takes serializes concurrent allocations for the same
// type until commit or rollback.
func (r *PgxTransactionRepository) nextDocumentNumber(ctx context.Context, tx pgx.Tx, companyID string, txnType domain.TransactionType) (int64, error) {
	query := `
		INSERT INTO document_counters (company_id, transaction_type, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, transaction_type)
		DO UPDATE SET last_number = document_counters.last_number + 1
		RETURNING last_number;
	`
	var number int64
	if err := tx.QueryRow(ctx, query, companyID, string(txnType)).Scan(&number); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate document number for type "+string(txnType), err)
	}
	return number, nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*modelTxn)
	return &domainTxn, nil
}

// FindLinesByTransactionID retrieves all lines of one transaction, ordered
// by line number.
func (r *PgxTransactionRepository) FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error) {
	query := lineSelectQuery + ` WHERE transaction_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transaction "+transactionID, err)
	}
	defer rows.Close()

	lines, err := scanLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan lines for transaction "+transactionID, err)
	}
	return mapping.ToDomainTransactionLineSlice(lines), nil
}

// FindLinesByTransactionIDs retrieves lines for multiple transactions in
// one batch, grouped by transaction ID. Transactions without lines get an
// empty slice.
func (r *PgxTransactionRepository) FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.TransactionLine{}, nil
	}

	query := lineSelectQuery + ` WHERE transaction_id = ANY($1) ORDER BY transaction_id, line_number;`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transaction batch", err)
	}
	defer rows.Close()

	modelLines, err := scanLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan lines during batch fetch", err)
	}

	linesMap := make(map[string][]domain.TransactionLine)
	for _, modelLine := range modelLines {
		domainLine := mapping.ToDomainTransactionLine(modelLine)
		linesMap[domainLine.TransactionID] = append(linesMap[domainLine.TransactionID], domainLine)
	}
	for _, id := range transactionIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.TransactionLine{}
		}
	}
	return linesMap, nil
}

// ListConfirmedTransactions retrieves CONFIRMED transactions of the given
// types in the optional inclusive date window, ordered by creation time
// with the transaction ID as tie-breaker for a stable result.
func (r *PgxTransactionRepository) ListConfirmedTransactions(ctx context.Context, companyID string, types []domain.TransactionType, from, to *time.Time, limit int) ([]domain.Transaction, error) {
	if len(types) == 0 {
		return []domain.Transaction{}, nil
	}
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1 AND status = 'CONFIRMED' AND type = ANY($2)`
	args := []interface{}{companyID, typeStrings}

	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at, transaction_id`
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query confirmed transactions for company "+companyID, err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// ListTransactionsByCompany retrieves a paginated list of transactions for
// a company using token-based pagination, newest first.
func (r *PgxTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE company_id = $1`
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastTransactionID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal timestamps
		args = append(args, lastCreatedAt, lastTransactionID)
		query += ` AND (created_at, transaction_id) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for company "+companyID, err)
	}
	defer rows.Close()

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return txns, nextTokenVal, nil
}

// UpdateTransactionStatus applies the status transition of the reversal
// flow. No other column of a persisted transaction is ever updated.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $2 WHERE transaction_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, string(status))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for status update")
	}
	return nil
}

const lineSelectQuery = `
	SELECT line_id, transaction_id, line_number, item_name, sku, variant_label,
	       quantity, unit_price, unit_cost, discount_percent, discount_amount,
	       tax_percent, tax_amount, tax_id, subtotal, total, created_at, created_by
	FROM transaction_lines`

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.DocumentNumber,
		&m.Type,
		&m.Status,
		&m.BranchID,
		&m.PointOfSaleID,
		&m.CashSessionID,
		&m.StorageID,
		&m.CounterpartID,
		&m.Subtotal,
		&m.DiscountAmount,
		&m.TaxAmount,
		&m.Total,
		&m.PaymentMethod,
		&m.ExpenseCategoryID,
		&m.ExternalReference,
		&m.Metadata,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return txns, nil
}

func scanLineRows(rows pgx.Rows) ([]models.TransactionLine, error) {
	lines := []models.TransactionLine{}
	for rows.Next() {
		var l models.TransactionLine
		err := rows.Scan(
			&l.LineID,
			&l.TransactionID,
			&l.LineNumber,
			&l.ItemName,
			&l.SKU,
			&l.VariantLabel,
			&l.Quantity,
			&l.UnitPrice,
			&l.UnitCost,
			&l.DiscountPercent,
			&l.DiscountAmount,
			&l.TaxPercent,
			&l.TaxAmount,
			&l.TaxID,
			&l.Subtotal,
			&l.Total,
			&l.CreatedAt,
			&l.CreatedBy,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
