package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

func TestAccountingRule_MatchesTransaction(t *testing.T) {
	saleTxn := domain.Transaction{
		Type:          domain.Sale,
		PaymentMethod: "CASH",
		Metadata:      domain.Metadata{domain.MetadataTaxIDKey: "iva-19"},
	}

	tests := []struct {
		name string
		rule domain.AccountingRule
		txn  domain.Transaction
		want bool
	}{
		{
			name: "type match without filters",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale},
			txn:  saleTxn,
			want: true,
		},
		{
			name: "type mismatch",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Purchase},
			txn:  saleTxn,
			want: false,
		},
		{
			name: "line scope never matches a transaction",
			rule: domain.AccountingRule{Scope: domain.ScopeTransactionLine, TransactionType: domain.Sale},
			txn:  saleTxn,
			want: false,
		},
		{
			name: "payment method filter match",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale, PaymentMethod: stringPtr("CASH")},
			txn:  saleTxn,
			want: true,
		},
		{
			name: "payment method filter mismatch",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale, PaymentMethod: stringPtr("CARD")},
			txn:  saleTxn,
			want: false,
		},
		{
			name: "tax filter match via metadata",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale, TaxID: stringPtr("iva-19")},
			txn:  saleTxn,
			want: true,
		},
		{
			name: "tax filter mismatch",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale, TaxID: stringPtr("iva-10")},
			txn:  saleTxn,
			want: false,
		},
		{
			name: "tax filter with no metadata",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale, TaxID: stringPtr("iva-19")},
			txn:  domain.Transaction{Type: domain.Sale},
			want: false,
		},
		{
			name: "expense category filter against explicit field",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Purchase, ExpenseCategoryID: stringPtr("cat-1")},
			txn:  domain.Transaction{Type: domain.Purchase, ExpenseCategoryID: stringPtr("cat-1")},
			want: true,
		},
		{
			name: "expense category filter mismatch",
			rule: domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Purchase, ExpenseCategoryID: stringPtr("cat-1")},
			txn:  domain.Transaction{Type: domain.Purchase, ExpenseCategoryID: stringPtr("cat-2")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.MatchesTransaction(tt.txn))
		})
	}
}

func TestAccountingRule_MatchesLine(t *testing.T) {
	line := domain.TransactionLine{TaxID: stringPtr("iva-19")}

	unfiltered := domain.AccountingRule{Scope: domain.ScopeTransactionLine, TransactionType: domain.Sale}
	assert.True(t, unfiltered.MatchesLine(line))
	assert.True(t, unfiltered.MatchesLine(domain.TransactionLine{}), "no tax filter matches untaxed lines too")

	filtered := domain.AccountingRule{Scope: domain.ScopeTransactionLine, TransactionType: domain.Sale, TaxID: stringPtr("iva-19")}
	assert.True(t, filtered.MatchesLine(line))
	assert.False(t, filtered.MatchesLine(domain.TransactionLine{TaxID: stringPtr("iva-10")}))
	assert.False(t, filtered.MatchesLine(domain.TransactionLine{}))

	txnScope := domain.AccountingRule{Scope: domain.ScopeTransaction, TransactionType: domain.Sale}
	assert.False(t, txnScope.MatchesLine(line), "transaction scope never matches a line")
}
