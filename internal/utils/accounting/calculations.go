package accounting

import (
	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeLineAmounts fills the derived monetary fields of a line from its
// quantity, unit price and discount/tax inputs. Explicit amounts win over
// percentages; a percentage is only used to derive an amount when the
// amount is zero. The line invariant enforced here:
//
//	Subtotal = Quantity * UnitPrice
//	Total    = Subtotal - DiscountAmount + TaxAmount
//
// Tax derived from a percentage applies to the discounted base.
func ComputeLineAmounts(line *domain.TransactionLine) {
	line.Subtotal = line.Quantity.Mul(line.UnitPrice)

	if line.DiscountAmount.IsZero() && !line.DiscountPercent.IsZero() {
		line.DiscountAmount = line.Subtotal.Mul(line.DiscountPercent).Div(oneHundred).Round(2)
	}
	if line.TaxAmount.IsZero() && !line.TaxPercent.IsZero() {
		taxable := line.Subtotal.Sub(line.DiscountAmount)
		line.TaxAmount = taxable.Mul(line.TaxPercent).Div(oneHundred).Round(2)
	}

	line.Total = line.Subtotal.Sub(line.DiscountAmount).Add(line.TaxAmount)
}

// SumTransactionAmounts folds line amounts into the header figures. The
// caller-supplied totals are never trusted; these sums are the only source
// of the transaction's subtotal, discount, tax and total.
func SumTransactionAmounts(lines []domain.TransactionLine) (subtotal, discount, tax, total decimal.Decimal) {
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal)
		discount = discount.Add(line.DiscountAmount)
		tax = tax.Add(line.TaxAmount)
	}
	total = subtotal.Sub(discount).Add(tax)
	return subtotal, discount, tax, total
}

// TransactionRuleMagnitude computes the signed magnitude a transaction-scope
// rule posts for the given transaction: subtotal for sales and sale
// returns (tax and discount post via dedicated rules), total for every
// other type, negated for return types.
func TransactionRuleMagnitude(txn domain.Transaction) decimal.Decimal {
	var magnitude decimal.Decimal
	switch txn.Type.PostingBasis() {
	case domain.BasisSubtotal:
		magnitude = txn.Subtotal
	default:
		magnitude = txn.Total
	}
	if txn.Type.NegatesPostingSign() {
		magnitude = magnitude.Neg()
	}
	return magnitude
}

// LineRuleMagnitude computes the signed magnitude a line-scope rule posts:
// the sum of matching lines' tax amounts, falling back to the sum of their
// subtotals when no tax was collected, negated for return types.
func LineRuleMagnitude(rule domain.AccountingRule, txn domain.Transaction) decimal.Decimal {
	var taxSum, subtotalSum decimal.Decimal
	for _, line := range txn.Lines {
		if !rule.MatchesLine(line) {
			continue
		}
		taxSum = taxSum.Add(line.TaxAmount)
		subtotalSum = subtotalSum.Add(line.Subtotal)
	}

	magnitude := taxSum
	if magnitude.IsZero() {
		magnitude = subtotalSum
	}
	if txn.Type.NegatesPostingSign() {
		magnitude = magnitude.Neg()
	}
	return magnitude
}
