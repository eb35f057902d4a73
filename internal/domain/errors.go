package domain

import "errors"

var (
	// Amount errors
	ErrInvalidAmount = errors.New("amount must be positive and non-zero")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
)
