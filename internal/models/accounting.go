package models

import "time"

// AccountingAccount is the persistence representation of a chart-of-accounts
// node.
type AccountingAccount struct {
	AccountID       string
	CompanyID       string
	Code            string
	Name            string
	AccountType     string
	ParentAccountID *string
	IsActive        bool
	CreatedAt       time.Time
	CreatedBy       string
}

// AccountingRule is the persistence representation of a posting rule.
type AccountingRule struct {
	RuleID            string
	CompanyID         string
	Name              string
	Scope             string
	TransactionType   string
	PaymentMethod     *string
	TaxID             *string
	ExpenseCategoryID *string
	DebitAccountID    string
	CreditAccountID   string
	Priority          int
	IsActive          bool
	CreatedAt         time.Time
	CreatedBy         string
}

// CashSession is the persistence representation of a point-of-sale cash
// session.
type CashSession struct {
	SessionID     string
	CompanyID     string
	PointOfSaleID string
	Status        string
	OpenedAt      time.Time
	ClosedAt      *time.Time
}
