package domain

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountingAccount is a node in a company-scoped chart of accounts.
// Accounts are configuration entities managed outside this core; the ledger
// engine only reads them.
type AccountingAccount struct {
	AccountID       string      `json:"accountID"` // Primary key (UUID)
	CompanyID       string      `json:"companyID"`
	Code            string      `json:"code"` // Unique per company, e.g. "1100"
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *string     `json:"parentAccountID,omitempty"` // Tree, not cyclic
	IsActive        bool        `json:"isActive"`
	CreationFields
}

// NormalizeBalanceForPresentation flips the sign of credit-natured account
// balances for display. It is a pure presentation transform: the stored and
// aggregated balance is always debits minus credits.
func NormalizeBalanceForPresentation(accountType AccountType, balance decimal.Decimal) decimal.Decimal {
	switch accountType {
	case Liability, Equity, Income:
		return balance.Neg()
	default:
		return balance
	}
}
