package domain

import "github.com/shopspring/decimal"

// Account holds one client's balances together with the transactions still
// eligible for dispute (openTxns) and those currently under dispute
// (heldTxns). A transaction id lives in at most one of the two maps.
//
// Available and Held may go negative after a withdrawal dispute; that is
// accepted domain behavior, not a defect.
type Account struct {
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool

	openTxns map[TxnID]Txn
	heldTxns map[TxnID]Txn
}

// NewAccount creates an account with zero balances.
func NewAccount() *Account {
	return &Account{
		Available: decimal.Zero,
		Held:      decimal.Zero,
		openTxns:  make(map[TxnID]Txn),
		heldTxns:  make(map[TxnID]Txn),
	}
}

// Deposit credits available funds. Deposits are accepted even on a locked
// account. A repeated (client, tx) pair overwrites the stored record.
func (a *Account) Deposit(txn TxnID, amount PositiveDecimal) {
	a.openTxns[txn] = Txn{Kind: TxnDeposit, Amount: amount.Decimal()}
	a.Available = a.Available.Add(amount.Decimal())
}

// Withdraw debits available funds. It fails with ErrAccountLocked on a locked
// account and ErrInsufficientFunds when available < amount.
func (a *Account) Withdraw(txn TxnID, amount PositiveDecimal) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amount.Decimal()) {
		return ErrInsufficientFunds
	}
	a.openTxns[txn] = Txn{Kind: TxnWithdrawal, Amount: amount.Decimal()}
	a.Available = a.Available.Sub(amount.Decimal())
	return nil
}

// Dispute places an open transaction under dispute, shifting its
// type-adjusted amount from available to held.
func (a *Account) Dispute(txn TxnID) error {
	if a.Locked {
		return ErrAccountLocked
	}
	t, ok := a.openTxns[txn]
	if !ok {
		return ErrTransactionNotFound
	}
	delete(a.openTxns, txn)
	adjusted := t.TypeAdjustedAmount()
	a.Held = a.Held.Add(adjusted)
	a.Available = a.Available.Sub(adjusted)
	a.heldTxns[txn] = t
	return nil
}

// Resolve releases a disputed transaction, reversing the dispute's effect on
// the balances and making the transaction disputable again.
func (a *Account) Resolve(txn TxnID) error {
	if a.Locked {
		return ErrAccountLocked
	}
	t, ok := a.heldTxns[txn]
	if !ok {
		return ErrTransactionNotFound
	}
	delete(a.heldTxns, txn)
	adjusted := t.TypeAdjustedAmount()
	a.Held = a.Held.Sub(adjusted)
	a.Available = a.Available.Add(adjusted)
	a.openTxns[txn] = t
	return nil
}

// Chargeback permanently backs out a disputed transaction and locks the
// account. The held funds are not restored to available.
func (a *Account) Chargeback(txn TxnID) error {
	if a.Locked {
		return ErrAccountLocked
	}
	t, ok := a.heldTxns[txn]
	if !ok {
		return ErrTransactionNotFound
	}
	delete(a.heldTxns, txn)
	a.Held = a.Held.Sub(t.TypeAdjustedAmount())
	a.Locked = true
	return nil
}

// OpenTxn returns the open (disputable) transaction under id, if any.
func (a *Account) OpenTxn(txn TxnID) (Txn, bool) {
	t, ok := a.openTxns[txn]
	return t, ok
}

// HeldTxn returns the transaction under dispute with id, if any.
func (a *Account) HeldTxn(txn TxnID) (Txn, bool) {
	t, ok := a.heldTxns[txn]
	return t, ok
}

// Snapshot summarizes the account for client at this point in time.
func (a *Account) Snapshot(client ClientID) Snapshot {
	return Snapshot{
		Client:    client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Available.Add(a.Held),
		Locked:    a.Locked,
	}
}
