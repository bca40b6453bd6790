package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence representation of one commercial event.
type Transaction struct {
	TransactionID     string
	CompanyID         string
	DocumentNumber    string
	Type              string
	Status            string
	BranchID          string
	PointOfSaleID     *string
	CashSessionID     *string
	StorageID         *string
	CounterpartID     *string
	Subtotal          decimal.Decimal
	DiscountAmount    decimal.Decimal
	TaxAmount         decimal.Decimal
	Total             decimal.Decimal
	PaymentMethod     string
	ExpenseCategoryID *string
	ExternalReference *string
	Metadata          map[string]any // Stored as JSONB
	CreatedAt         time.Time
	CreatedBy         string
}

// TransactionLine is the persistence representation of one traded item.
type TransactionLine struct {
	LineID          string
	TransactionID   string
	LineNumber      int
	ItemName        string
	SKU             string
	VariantLabel    string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	UnitCost        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	TaxID           *string
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	CreatedAt       time.Time
	CreatedBy       string
}
