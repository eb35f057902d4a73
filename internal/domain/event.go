package domain

import (
	"fmt"
	"strings"
)

// ClientID identifies a client account.
type ClientID uint16

// TxnID identifies a single transaction within the feed.
type TxnID uint32

// EventKind enumerates the five transaction event types.
type EventKind int

const (
	EventDeposit EventKind = iota
	EventWithdrawal
	EventDispute
	EventResolve
	EventChargeback
)

func (k EventKind) String() string {
	switch k {
	case EventDeposit:
		return "deposit"
	case EventWithdrawal:
		return "withdrawal"
	case EventDispute:
		return "dispute"
	case EventResolve:
		return "resolve"
	case EventChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseEventKind parses an event type name, case-insensitively.
func ParseEventKind(s string) (EventKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return EventDeposit, nil
	case "withdrawal":
		return EventWithdrawal, nil
	case "dispute":
		return EventDispute, nil
	case "resolve":
		return EventResolve, nil
	case "chargeback":
		return EventChargeback, nil
	default:
		return 0, fmt.Errorf("unrecognized event type %q", s)
	}
}

// RequiresAmount reports whether events of this kind carry an amount.
func (k EventKind) RequiresAmount() bool {
	return k == EventDeposit || k == EventWithdrawal
}

// Event is one validated transaction event. Amount is set only when
// Kind.RequiresAmount() is true; dispute, resolve and chargeback reference
// the amount of the transaction they target.
type Event struct {
	Kind   EventKind
	Client ClientID
	Txn    TxnID
	Amount PositiveDecimal
}
