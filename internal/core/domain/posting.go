package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is one computed row of a derived double-entry ledger: either a
// debit or a credit against one account. Postings are value objects built,
// consumed and discarded within a single ledger build; they are never
// persisted.
type Posting struct {
	PostingID     string          `json:"postingID"` // Synthetic, deterministic: txID:ruleID:accountID:D|C
	TransactionID string          `json:"transactionID"`
	RuleID        string          `json:"ruleID"`
	AccountID     string          `json:"accountID"`
	Date          time.Time       `json:"date"`
	Reference     string          `json:"reference"` // Document number of the source transaction
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}
