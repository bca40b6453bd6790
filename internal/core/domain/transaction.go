package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the commercial event a transaction records.
type TransactionType string

const (
	Sale           TransactionType = "SALE"
	Purchase       TransactionType = "PURCHASE"
	SaleReturn     TransactionType = "SALE_RETURN"
	PurchaseReturn TransactionType = "PURCHASE_RETURN"
	TransferIn     TransactionType = "TRANSFER_IN"
	TransferOut    TransactionType = "TRANSFER_OUT"
	AdjustmentIn   TransactionType = "ADJUSTMENT_IN"
	AdjustmentOut  TransactionType = "ADJUSTMENT_OUT"
	PaymentIn      TransactionType = "PAYMENT_IN"
	PaymentOut     TransactionType = "PAYMENT_OUT"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusDraft     TransactionStatus = "DRAFT"
	StatusConfirmed TransactionStatus = "CONFIRMED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Metadata is the free-form JSON bag attached to a transaction. Ad hoc
// filter values (tax id, expense category) live here for compatibility;
// explicit fields take precedence when present.
type Metadata map[string]any

// Metadata keys recognised by the rule-matching engine.
const (
	MetadataTaxIDKey           = "taxId"
	MetadataExpenseCategoryKey = "expenseCategoryId"
	MetadataCancelReasonKey    = "cancelReason"
)

// Transaction is one immutable commercial event with computed totals.
// Monetary invariant: Total = Subtotal - DiscountAmount + TaxAmount,
// computed once at creation and never recomputed.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`  // Primary key (UUID)
	CompanyID         string            `json:"companyID"`      // Scope for document numbers and chart of accounts
	DocumentNumber    string            `json:"documentNumber"` // Unique within type+company, e.g. VTA-00000001
	Type              TransactionType   `json:"type"`
	Status            TransactionStatus `json:"status"`
	BranchID          string            `json:"branchID"`
	PointOfSaleID     *string           `json:"pointOfSaleID,omitempty"`
	CashSessionID     *string           `json:"cashSessionID,omitempty"`
	StorageID         *string           `json:"storageID,omitempty"`
	CounterpartID     *string           `json:"counterpartID,omitempty"` // Customer or supplier reference
	Subtotal          decimal.Decimal   `json:"subtotal"`
	DiscountAmount    decimal.Decimal   `json:"discountAmount"`
	TaxAmount         decimal.Decimal   `json:"taxAmount"`
	Total             decimal.Decimal   `json:"total"`
	PaymentMethod     string            `json:"paymentMethod,omitempty"`
	ExpenseCategoryID *string           `json:"expenseCategoryID,omitempty"`
	ExternalReference *string           `json:"externalReference,omitempty"` // Reversal transactions point at the original here
	Metadata          Metadata          `json:"metadata,omitempty"`
	Lines             []TransactionLine `json:"lines,omitempty"`
	CreationFields
}

// MarkCancelled performs the single sanctioned mutation of a transaction:
// the CONFIRMED -> CANCELLED status transition driven by the reversal flow.
func (t *Transaction) MarkCancelled() error {
	if t.Status == StatusCancelled {
		return fmt.Errorf("transaction %s is already cancelled", t.TransactionID)
	}
	if t.Status != StatusConfirmed {
		return fmt.Errorf("transaction %s is not confirmed, status is %s", t.TransactionID, t.Status)
	}
	t.Status = StatusCancelled
	return nil
}

// TaxID returns the tax identifier carried in the transaction metadata,
// if any.
func (t *Transaction) TaxID() (string, bool) {
	return t.metadataString(MetadataTaxIDKey)
}

// ExpenseCategory resolves the expense category, preferring the explicit
// field over the legacy metadata entry.
func (t *Transaction) ExpenseCategory() (string, bool) {
	if t.ExpenseCategoryID != nil && *t.ExpenseCategoryID != "" {
		return *t.ExpenseCategoryID, true
	}
	return t.metadataString(MetadataExpenseCategoryKey)
}

func (t *Transaction) metadataString(key string) (string, bool) {
	if t.Metadata == nil {
		return "", false
	}
	v, ok := t.Metadata[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
