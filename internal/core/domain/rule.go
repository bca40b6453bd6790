package domain

// RuleScope says whether an accounting rule evaluates against a whole
// transaction or against individual transaction lines.
type RuleScope string

const (
	ScopeTransaction     RuleScope = "TRANSACTION"
	ScopeTransactionLine RuleScope = "TRANSACTION_LINE"
)

// AccountingRule is a matching predicate plus a debit/credit action.
// Rules are configuration entities managed outside this core. Multiple
// rules may match the same transaction or line; all matches are applied
// independently, priority only orders the evaluation.
type AccountingRule struct {
	RuleID            string          `json:"ruleID"` // Primary key (UUID)
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Scope             RuleScope       `json:"scope"`
	TransactionType   TransactionType `json:"transactionType"`
	PaymentMethod     *string         `json:"paymentMethod,omitempty"`     // TRANSACTION scope only
	TaxID             *string         `json:"taxID,omitempty"`             // Both scopes
	ExpenseCategoryID *string         `json:"expenseCategoryID,omitempty"` // TRANSACTION scope only
	DebitAccountID    string          `json:"debitAccountID"`
	CreditAccountID   string          `json:"creditAccountID"`
	Priority          int             `json:"priority"` // Evaluation ordering hint, not exclusivity
	IsActive          bool            `json:"isActive"`
	CreationFields
}

// MatchesTransaction reports whether a TRANSACTION-scope rule applies to
// the given transaction.
func (r AccountingRule) MatchesTransaction(txn Transaction) bool {
	if r.Scope != ScopeTransaction || r.TransactionType != txn.Type {
		return false
	}
	if r.PaymentMethod != nil && *r.PaymentMethod != txn.PaymentMethod {
		return false
	}
	if r.TaxID != nil {
		taxID, ok := txn.TaxID()
		if !ok || taxID != *r.TaxID {
			return false
		}
	}
	if r.ExpenseCategoryID != nil {
		category, ok := txn.ExpenseCategory()
		if !ok || category != *r.ExpenseCategoryID {
			return false
		}
	}
	return true
}

// MatchesLine reports whether a TRANSACTION_LINE-scope rule applies to the
// given line. Line rules carry no payment-method or expense-category
// filters.
func (r AccountingRule) MatchesLine(line TransactionLine) bool {
	if r.Scope != ScopeTransactionLine {
		return false
	}
	if r.TaxID != nil {
		if line.TaxID == nil || *line.TaxID != *r.TaxID {
			return false
		}
	}
	return true
}
