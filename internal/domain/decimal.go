package domain

import "github.com/shopspring/decimal"

// PositiveDecimal wraps a decimal guaranteed to be strictly greater than zero.
// It does not expose the inner value mutably, so a successfully constructed
// amount never needs its sign re-checked downstream.
type PositiveDecimal struct {
	value decimal.Decimal
}

// NewPositiveDecimal validates d and wraps it. Zero and negative values are
// rejected with ErrInvalidAmount.
func NewPositiveDecimal(d decimal.Decimal) (PositiveDecimal, error) {
	if d.LessThanOrEqual(decimal.Zero) {
		return PositiveDecimal{}, ErrInvalidAmount
	}
	return PositiveDecimal{value: d}, nil
}

// ParsePositiveDecimal parses s as a decimal and validates it.
func ParsePositiveDecimal(s string) (PositiveDecimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return PositiveDecimal{}, err
	}
	return NewPositiveDecimal(d)
}

// Decimal returns the wrapped value.
func (p PositiveDecimal) Decimal() decimal.Decimal {
	return p.value
}

func (p PositiveDecimal) String() string {
	return p.value.String()
}
