package dto

import (
	"fmt"

	"github.com/iho/payengine/internal/domain"
)

// EventRequest is the JSON body for applying one transaction event.
type EventRequest struct {
	Type   string `json:"type"`
	Client uint16 `json:"client"`
	Tx     uint32 `json:"tx"`
	Amount string `json:"amount,omitempty"`
}

// ToDomain validates the request and converts it to a domain event.
func (r EventRequest) ToDomain() (domain.Event, error) {
	kind, err := domain.ParseEventKind(r.Type)
	if err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		Kind:   kind,
		Client: domain.ClientID(r.Client),
		Txn:    domain.TxnID(r.Tx),
	}

	if kind.RequiresAmount() {
		if r.Amount == "" {
			return domain.Event{}, fmt.Errorf("missing amount for %s", kind)
		}
		amount, err := domain.ParsePositiveDecimal(r.Amount)
		if err != nil {
			return domain.Event{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
		}
		event.Amount = amount
	}

	return event, nil
}
