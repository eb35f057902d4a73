package domain

import "github.com/shopspring/decimal"

// TxnKind distinguishes the two transaction types that can be disputed.
type TxnKind int

const (
	TxnDeposit TxnKind = iota
	TxnWithdrawal
)

func (k TxnKind) String() string {
	if k == TxnWithdrawal {
		return "withdrawal"
	}
	return "deposit"
}

// Txn is the minimal record retained per transaction so it can later be
// disputed, resolved or charged back.
type Txn struct {
	Kind   TxnKind
	Amount decimal.Decimal
}

// TypeAdjustedAmount is the signed quantity moved between available and held
// during the dispute lifecycle: +Amount for a deposit, -Amount for a
// withdrawal. The sign makes a disputed withdrawal restore funds to available
// on resolve.
func (t Txn) TypeAdjustedAmount() decimal.Decimal {
	if t.Kind == TxnWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
