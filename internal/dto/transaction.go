package dto

import (
	"time"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionLineRequest is one traded item in a create request.
// Amounts win over percentages; percentages only derive amounts when the
// amount is absent.
type CreateTransactionLineRequest struct {
	ItemName        string          `json:"itemName" binding:"required"`
	SKU             string          `json:"sku" binding:"required"`
	VariantLabel    string          `json:"variantLabel"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TaxID           *string         `json:"taxID"`
}

// CreateTransactionRequest carries everything needed to record one
// commercial event. Header totals are never part of the request: they are
// always computed from the lines.
type CreateTransactionRequest struct {
	Type              domain.TransactionType         `json:"type" binding:"required,txntype"`
	DocumentNumber    *string                        `json:"documentNumber"`
	BranchID          string                         `json:"branchID" binding:"required"`
	PointOfSaleID     *string                        `json:"pointOfSaleID"`
	CashSessionID     *string                        `json:"cashSessionID"`
	StorageID         *string                        `json:"storageID"`
	CounterpartID     *string                        `json:"counterpartID"`
	PaymentMethod     string                         `json:"paymentMethod"`
	ExpenseCategoryID *string                        `json:"expenseCategoryID"`
	ExternalReference *string                        `json:"externalReference"`
	Metadata          domain.Metadata                `json:"metadata"`
	Lines             []CreateTransactionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CancelTransactionRequest carries the reason recorded on a reversal.
type CancelTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionLineResponse is the read model of one line.
type TransactionLineResponse struct {
	LineID          string          `json:"lineID"`
	LineNumber      int             `json:"lineNumber"`
	ItemName        string          `json:"itemName"`
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
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
}

// TransactionResponse is the read model of a transaction header, optionally
// with its lines.
type TransactionResponse struct {
	TransactionID     string                    `json:"transactionID"`
	CompanyID         string                    `json:"companyID"`
	DocumentNumber    string                    `json:"documentNumber"`
	Type              domain.TransactionType    `json:"type"`
	Status            domain.TransactionStatus  `json:"status"`
	BranchID          string                    `json:"branchID"`
	PointOfSaleID     *string                   `json:"pointOfSaleID,omitempty"`
	CashSessionID     *string                   `json:"cashSessionID,omitempty"`
	CounterpartID     *string                   `json:"counterpartID,omitempty"`
	Subtotal          decimal.Decimal           `json:"subtotal"`
	DiscountAmount    decimal.Decimal           `json:"discountAmount"`
	TaxAmount         decimal.Decimal           `json:"taxAmount"`
	Total             decimal.Decimal           `json:"total"`
	PaymentMethod     string                    `json:"paymentMethod,omitempty"`
	ExternalReference *string                   `json:"externalReference,omitempty"`
	Metadata          domain.Metadata           `json:"metadata,omitempty"`
	Lines             []TransactionLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
	CreatedBy         string                    `json:"createdBy"`
}

// ListTransactionsParams holds the paging inputs for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of transactions plus the cursor for
// the next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionLineResponse converts a domain line to its read model.
func ToTransactionLineResponse(line *domain.TransactionLine) TransactionLineResponse {
	return TransactionLineResponse{
		LineID:          line.LineID,
		LineNumber:      line.LineNumber,
		ItemName:        line.ItemName,
		SKU:             line.SKU,
		VariantLabel:    line.VariantLabel,
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		UnitCost:        line.UnitCost,
		DiscountPercent: line.DiscountPercent,
		DiscountAmount:  line.DiscountAmount,
		TaxPercent:      line.TaxPercent,
		TaxAmount:       line.TaxAmount,
		TaxID:           line.TaxID,
		Subtotal:        line.Subtotal,
		Total:           line.Total,
	}
}

// ToTransactionResponse converts a domain transaction to its read model.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:     txn.TransactionID,
		CompanyID:         txn.CompanyID,
		DocumentNumber:    txn.DocumentNumber,
		Type:              txn.Type,
		Status:            txn.Status,
		BranchID:          txn.BranchID,
		PointOfSaleID:     txn.PointOfSaleID,
		CashSessionID:     txn.CashSessionID,
		CounterpartID:     txn.CounterpartID,
		Subtotal:          txn.Subtotal,
		DiscountAmount:    txn.DiscountAmount,
		TaxAmount:         txn.TaxAmount,
		Total:             txn.Total,
		PaymentMethod:     txn.PaymentMethod,
		ExternalReference: txn.ExternalReference,
		Metadata:          txn.Metadata,
		CreatedAt:         txn.CreatedAt,
		CreatedBy:         txn.CreatedBy,
	}
	if len(txn.Lines) > 0 {
		resp.Lines = make([]TransactionLineResponse, len(txn.Lines))
		for i := range txn.Lines {
			resp.Lines[i] = ToTransactionLineResponse(&txn.Lines[i])
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
