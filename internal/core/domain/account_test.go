package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

func TestNormalizeBalanceForPresentation(t *testing.T) {
	balance := decimal.NewFromInt(-500)

	// Credit-natured accounts flip sign for display.
	for _, accountType := range []domain.AccountType{domain.Liability, domain.Equity, domain.Income} {
		normalized := domain.NormalizeBalanceForPresentation(accountType, balance)
		assert.True(t, normalized.Equal(decimal.NewFromInt(500)), "type %s", accountType)
	}

	// Debit-natured accounts pass through unchanged.
	for _, accountType := range []domain.AccountType{domain.Asset, domain.Expense} {
		normalized := domain.NormalizeBalanceForPresentation(accountType, balance)
		assert.True(t, normalized.Equal(balance), "type %s", accountType)
	}

	assert.True(t, domain.NormalizeBalanceForPresentation(domain.Income, decimal.Zero).IsZero())
}
