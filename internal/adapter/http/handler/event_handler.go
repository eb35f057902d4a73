package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/payengine/internal/adapter/http/dto"
	"github.com/iho/payengine/internal/domain"
)

// LedgerService defines the behavior needed by the handlers.
type LedgerService interface {
	Apply(ctx context.Context, event domain.Event) error
	Snapshot(ctx context.Context, client domain.ClientID) (domain.Snapshot, error)
	Snapshots(ctx context.Context) ([]domain.Snapshot, error)
}

// EventHandler handles transaction event submissions.
type EventHandler struct {
	ledger LedgerService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(ledger LedgerService) *EventHandler {
	return &EventHandler{ledger: ledger}
}

// Apply applies one transaction event to the ledger.
func (h *EventHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event", err.Error())
		return
	}

	if err := h.ledger.Apply(r.Context(), event); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "event rejected", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.EventResponse{Status: "applied"})
}
