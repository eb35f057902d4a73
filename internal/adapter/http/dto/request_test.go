package dto

import (
	"testing"

	"github.com/iho/payengine/internal/domain"
)

func TestEventRequest_ToDomain(t *testing.T) {
	tests := []struct {
		name        string
		req         EventRequest
		expectError bool
		kind        domain.EventKind
	}{
		{
			name: "deposit with amount",
			req:  EventRequest{Type: "deposit", Client: 1, Tx: 101, Amount: "123.45"},
			kind: domain.EventDeposit,
		},
		{
			name: "dispute without amount",
			req:  EventRequest{Type: "dispute", Client: 1, Tx: 101},
			kind: domain.EventDispute,
		},
		{
			name: "type is case-insensitive",
			req:  EventRequest{Type: "Chargeback", Client: 1, Tx: 101},
			kind: domain.EventChargeback,
		},
		{
			name:        "deposit without amount",
			req:         EventRequest{Type: "deposit", Client: 1, Tx: 101},
			expectError: true,
		},
		{
			name:        "withdrawal with negative amount",
			req:         EventRequest{Type: "withdrawal", Client: 1, Tx: 101, Amount: "-5"},
			expectError: true,
		},
		{
			name:        "unrecognized type",
			req:         EventRequest{Type: "__BOGUS__", Client: 1, Tx: 101},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := tt.req.ToDomain()

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, event.Kind)
			}
			if event.Client != domain.ClientID(tt.req.Client) {
				t.Errorf("expected client %d, got %d", tt.req.Client, event.Client)
			}
		})
	}
}
