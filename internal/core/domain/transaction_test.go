package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

func stringPtr(s string) *string { return &s }

func TestTransaction_MarkCancelled(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.TransactionStatus
		wantErr    bool
		wantStatus domain.TransactionStatus
	}{
		{
			name:       "confirmed transaction cancels",
			status:     domain.StatusConfirmed,
			wantErr:    false,
			wantStatus: domain.StatusCancelled,
		},
		{
			name:       "already cancelled is rejected",
			status:     domain.StatusCancelled,
			wantErr:    true,
			wantStatus: domain.StatusCancelled,
		},
		{
			name:       "draft is rejected",
			status:     domain.StatusDraft,
			wantErr:    true,
			wantStatus: domain.StatusDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{TransactionID: "txn-1", Status: tt.status}
			err := txn.MarkCancelled()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, txn.Status)
		})
	}
}

func TestTransaction_TaxID(t *testing.T) {
	txn := domain.Transaction{}
	_, ok := txn.TaxID()
	assert.False(t, ok, "no metadata means no tax id")

	txn.Metadata = domain.Metadata{domain.MetadataTaxIDKey: "iva-19"}
	taxID, ok := txn.TaxID()
	require.True(t, ok)
	assert.Equal(t, "iva-19", taxID)

	txn.Metadata = domain.Metadata{domain.MetadataTaxIDKey: 19}
	_, ok = txn.TaxID()
	assert.False(t, ok, "non-string metadata values are ignored")
}

func TestTransaction_ExpenseCategory(t *testing.T) {
	txn := domain.Transaction{
		Metadata: domain.Metadata{domain.MetadataExpenseCategoryKey: "from-metadata"},
	}

	category, ok := txn.ExpenseCategory()
	require.True(t, ok)
	assert.Equal(t, "from-metadata", category)

	// The explicit field wins over the metadata entry.
	txn.ExpenseCategoryID = stringPtr("explicit")
	category, ok = txn.ExpenseCategory()
	require.True(t, ok)
	assert.Equal(t, "explicit", category)
}
