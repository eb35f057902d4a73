package domain

import "github.com/shopspring/decimal"

// Snapshot summarizes one account at a point in time. Available, Held and
// Total can all be negative after disputes involving withdrawals.
type Snapshot struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// FormatAmount renders a balance for output: round half away from zero to
// four decimal places, then collapse an integral result to an integer string
// ("100.0000" renders as "100", "100.12" stays "100.12").
func FormatAmount(d decimal.Decimal) string {
	rounded := d.Round(4)
	if rounded.IsInteger() {
		return rounded.Truncate(0).String()
	}
	return rounded.String()
}
