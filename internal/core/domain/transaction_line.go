package domain

import "github.com/shopspring/decimal"

// TransactionLine is an immutable snapshot of one traded item, captured at
// transaction time so historical lines survive later catalog changes.
// Monetary invariant: Total = Quantity*UnitPrice - DiscountAmount + TaxAmount.
type TransactionLine struct {
	LineID          string          `json:"lineID"`        // Primary key (UUID)
	TransactionID   string          `json:"transactionID"` // FK -> Transaction
	LineNumber      int             `json:"lineNumber"`    // 1-based, dense, transaction-scoped
	ItemName        string          `json:"itemName"`      // Snapshot, not a catalog reference
	SKU             string          `json:"sku"`
	VariantLabel    string          `json:"variantLabel,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TaxID           *string         `json:"taxID,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"` // Quantity * UnitPrice
	Total           decimal.Decimal `json:"total"`
	CreationFields
}
