package mapping

import (
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	"github.com/fchandiac/flow-store-sub001/internal/models"
)

// ToDomainAccount converts a model account to a domain account.
func ToDomainAccount(m models.AccountingAccount) domain.AccountingAccount {
	return domain.AccountingAccount{
		AccountID:       m.AccountID,
		CompanyID:       m.CompanyID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
		CreationFields: domain.CreationFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToDomainRule converts a model rule to a domain rule.
func ToDomainRule(m models.AccountingRule) domain.AccountingRule {
	return domain.AccountingRule{
		RuleID:            m.RuleID,
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Scope:             domain.RuleScope(m.Scope),
		TransactionType:   domain.TransactionType(m.TransactionType),
		PaymentMethod:     m.PaymentMethod,
		TaxID:             m.TaxID,
		ExpenseCategoryID: m.ExpenseCategoryID,
		DebitAccountID:    m.DebitAccountID,
		CreditAccountID:   m.CreditAccountID,
		Priority:          m.Priority,
		IsActive:          m.IsActive,
		CreationFields: domain.CreationFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToDomainCashSession converts a model cash session to the domain type.
func ToDomainCashSession(m models.CashSession) domain.CashSession {
	return domain.CashSession{
		SessionID:     m.SessionID,
		CompanyID:     m.CompanyID,
		PointOfSaleID: m.PointOfSaleID,
		Status:        domain.CashSessionStatus(m.Status),
		OpenedAt:      m.OpenedAt,
		ClosedAt:      m.ClosedAt,
	}
}
