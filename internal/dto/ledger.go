package dto

import (
	"time"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildLedgerParams selects the slice of the immutable log a ledger build
// recomputes. From and To are inclusive bounds; a positive Limit caps the
// number of transactions considered.
type BuildLedgerParams struct {
	CompanyID string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// PostingResponse is the read model of one derived ledger row.
type PostingResponse struct {
	PostingID     string          `json:"postingID"`
	TransactionID string          `json:"transactionID"`
	RuleID        string          `json:"ruleID"`
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	Date          time.Time       `json:"date"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// LedgerAccountResponse is the per-account view of a ledger build: the raw
// aggregated balance (debits minus credits) plus the presentation-normalized
// figure for credit-natured accounts.
type LedgerAccountResponse struct {
	AccountID         string             `json:"accountID"`
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	AccountType       domain.AccountType `json:"accountType"`
	Balance           decimal.Decimal    `json:"balance"`
	NormalizedBalance decimal.Decimal    `json:"normalizedBalance"`
}

// LedgerComputationResult is the full output of one ledger build: a pure,
// deterministic recomputation over the selected window. BalanceByAccount is
// keyed by account code.
type LedgerComputationResult struct {
	Accounts         []LedgerAccountResponse    `json:"accounts"`
	Postings         []PostingResponse          `json:"postings"`
	BalanceByAccount map[string]decimal.Decimal `json:"balanceByAccount"`
}
