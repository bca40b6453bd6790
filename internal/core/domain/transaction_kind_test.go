package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

func TestTransactionType_DocumentPrefix(t *testing.T) {
	prefixes := map[domain.TransactionType]string{
		domain.Sale:           "VTA",
		domain.Purchase:       "OC",
		domain.SaleReturn:     "DVV",
		domain.PurchaseReturn: "DVC",
		domain.TransferIn:     "TRI",
		domain.TransferOut:    "TRE",
		domain.AdjustmentIn:   "AJI",
		domain.AdjustmentOut:  "AJE",
		domain.PaymentIn:      "PGI",
		domain.PaymentOut:     "PGE",
	}
	for txnType, prefix := range prefixes {
		assert.Equal(t, prefix, txnType.DocumentPrefix(), "prefix for %s", txnType)
		assert.True(t, txnType.IsValid())
	}
	assert.False(t, domain.TransactionType("GIFT").IsValid())
}

func TestTransactionType_PostingBasis(t *testing.T) {
	// Sales and sale returns post the pre-tax subtotal; everything else
	// posts the final total.
	assert.Equal(t, domain.BasisSubtotal, domain.Sale.PostingBasis())
	assert.Equal(t, domain.BasisSubtotal, domain.SaleReturn.PostingBasis())
	assert.Equal(t, domain.BasisTotal, domain.Purchase.PostingBasis())
	assert.Equal(t, domain.BasisTotal, domain.PurchaseReturn.PostingBasis())
	assert.Equal(t, domain.BasisTotal, domain.PaymentIn.PostingBasis())
}

func TestTransactionType_NegatesPostingSign(t *testing.T) {
	assert.False(t, domain.Sale.NegatesPostingSign())
	assert.False(t, domain.Purchase.NegatesPostingSign())
	assert.True(t, domain.SaleReturn.NegatesPostingSign())
	assert.True(t, domain.PurchaseReturn.NegatesPostingSign())
}

func TestTransactionType_ReversalType(t *testing.T) {
	reversal, ok := domain.Sale.ReversalType()
	assert.True(t, ok)
	assert.Equal(t, domain.SaleReturn, reversal)

	reversal, ok = domain.Purchase.ReversalType()
	assert.True(t, ok)
	assert.Equal(t, domain.PurchaseReturn, reversal)

	for _, txnType := range []domain.TransactionType{
		domain.SaleReturn, domain.PurchaseReturn, domain.TransferIn,
		domain.TransferOut, domain.AdjustmentIn, domain.AdjustmentOut,
		domain.PaymentIn, domain.PaymentOut,
	} {
		_, ok := txnType.ReversalType()
		assert.False(t, ok, "%s must not be reversible", txnType)
	}
}
