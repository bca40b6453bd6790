package domain

// PostingBasis selects which transaction figure feeds a transaction-scope
// accounting rule.
type PostingBasis string

const (
	// BasisSubtotal posts the pre-tax, pre-discount sum of the lines.
	// Tax and discount figures are posted via separate dedicated rules.
	BasisSubtotal PostingBasis = "SUBTOTAL"
	// BasisTotal posts the final transaction total.
	BasisTotal PostingBasis = "TOTAL"
)

// transactionKind is the closed per-type behavior table: document prefix,
// posting basis, posting polarity and reversal mapping all live here so the
// type dispatch stays exhaustive and testable.
type transactionKind struct {
	prefix       string
	basis        PostingBasis
	negatesSign  bool
	reversalType TransactionType // empty when the type is not reversible
}

var transactionKinds = map[TransactionType]transactionKind{
	Sale:           {prefix: "VTA", basis: BasisSubtotal, reversalType: SaleReturn},
	Purchase:       {prefix: "OC", basis: BasisTotal, reversalType: PurchaseReturn},
	SaleReturn:     {prefix: "DVV", basis: BasisSubtotal, negatesSign: true},
	PurchaseReturn: {prefix: "DVC", basis: BasisTotal, negatesSign: true},
	TransferIn:     {prefix: "TRI", basis: BasisTotal},
	TransferOut:    {prefix: "TRE", basis: BasisTotal},
	AdjustmentIn:   {prefix: "AJI", basis: BasisTotal},
	AdjustmentOut:  {prefix: "AJE", basis: BasisTotal},
	PaymentIn:      {prefix: "PGI", basis: BasisTotal},
	PaymentOut:     {prefix: "PGE", basis: BasisTotal},
}

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	_, ok := transactionKinds[t]
	return ok
}

// DocumentPrefix returns the human-readable document number prefix for the
// type (e.g. "VTA" for SALE).
func (t TransactionType) DocumentPrefix() string {
	return transactionKinds[t].prefix
}

// PostingBasis returns which monetary figure transaction-scope rules post
// for this type.
func (t TransactionType) PostingBasis() PostingBasis {
	k, ok := transactionKinds[t]
	if !ok {
		return BasisTotal
	}
	return k.basis
}

// NegatesPostingSign reports whether posting magnitudes for this type are
// negated before emission. Return types negate so a single rule posts both
// the original movement and its reversal.
func (t TransactionType) NegatesPostingSign() bool {
	return transactionKinds[t].negatesSign
}

// ReversalType returns the transaction type that reverses this one. The
// second result is false for types that cannot be reversed.
func (t TransactionType) ReversalType() (TransactionType, bool) {
	k, ok := transactionKinds[t]
	if !ok || k.reversalType == "" {
		return "", false
	}
	return k.reversalType, true
}
