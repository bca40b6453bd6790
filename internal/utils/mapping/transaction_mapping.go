package mapping

import (
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	"github.com/fchandiac/flow-store-sub001/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		CompanyID:         d.CompanyID,
		DocumentNumber:    d.DocumentNumber,
		Type:              string(d.Type),
		Status:            string(d.Status),
		BranchID:          d.BranchID,
		PointOfSaleID:     d.PointOfSaleID,
		CashSessionID:     d.CashSessionID,
		StorageID:         d.StorageID,
		CounterpartID:     d.CounterpartID,
		Subtotal:          d.Subtotal,
		DiscountAmount:    d.DiscountAmount,
		TaxAmount:         d.TaxAmount,
		Total:             d.Total,
		PaymentMethod:     d.PaymentMethod,
		ExpenseCategoryID: d.ExpenseCategoryID,
		ExternalReference: d.ExternalReference,
		Metadata:          d.Metadata,
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		CompanyID:         m.CompanyID,
		DocumentNumber:    m.DocumentNumber,
		Type:              domain.TransactionType(m.Type),
		Status:            domain.TransactionStatus(m.Status),
		BranchID:          m.BranchID,
		PointOfSaleID:     m.PointOfSaleID,
		CashSessionID:     m.CashSessionID,
		StorageID:         m.StorageID,
		CounterpartID:     m.CounterpartID,
		Subtotal:          m.Subtotal,
		DiscountAmount:    m.DiscountAmount,
		TaxAmount:         m.TaxAmount,
		Total:             m.Total,
		PaymentMethod:     m.PaymentMethod,
		ExpenseCategoryID: m.ExpenseCategoryID,
		ExternalReference: m.ExternalReference,
		Metadata:          m.Metadata,
		CreationFields: domain.CreationFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToModelTransactionLine converts a domain line to a model line.
func ToModelTransactionLine(d domain.TransactionLine) models.TransactionLine {
	return models.TransactionLine{
		LineID:          d.LineID,
		TransactionID:   d.TransactionID,
		LineNumber:      d.LineNumber,
		ItemName:        d.ItemName,
		SKU:             d.SKU,
		VariantLabel:    d.VariantLabel,
		Quantity:        d.Quantity,
		UnitPrice:       d.UnitPrice,
		UnitCost:        d.UnitCost,
		DiscountPercent: d.DiscountPercent,
		DiscountAmount:  d.DiscountAmount,
		TaxPercent:      d.TaxPercent,
		TaxAmount:       d.TaxAmount,
		TaxID:           d.TaxID,
		Subtotal:        d.Subtotal,
		Total:           d.Total,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainTransactionLine converts a model line to a domain line.
func ToDomainTransactionLine(m models.TransactionLine) domain.TransactionLine {
	return domain.TransactionLine{
		LineID:          m.LineID,
		TransactionID:   m.TransactionID,
		LineNumber:      m.LineNumber,
		ItemName:        m.ItemName,
		SKU:             m.SKU,
		VariantLabel:    m.VariantLabel,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		UnitCost:        m.UnitCost,
		DiscountPercent: m.DiscountPercent,
		DiscountAmount:  m.DiscountAmount,
		TaxPercent:      m.TaxPercent,
		TaxAmount:       m.TaxAmount,
		TaxID:           m.TaxID,
		Subtotal:        m.Subtotal,
		Total:           m.Total,
		CreationFields: domain.CreationFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToDomainTransactionLineSlice converts a slice of model lines.
func ToDomainTransactionLineSlice(ms []models.TransactionLine) []domain.TransactionLine {
	ds := make([]domain.TransactionLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionLine(m)
	}
	return ds
}
