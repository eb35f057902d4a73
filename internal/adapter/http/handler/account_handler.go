package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payengine/internal/adapter/http/dto"
	"github.com/iho/payengine/internal/domain"
)

// AccountHandler serves account snapshots.
type AccountHandler struct {
	ledger LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger LedgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// List returns a snapshot of every known account, ordered by client id.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.ledger.Snapshots(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromSnapshots(snaps),
		Total:    int64(len(snaps)),
	})
}

// Get returns the snapshot of a single account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client")
	client, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", raw)
		return
	}

	snap, err := h.ledger.Snapshot(r.Context(), domain.ClientID(client))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromSnapshot(snap))
}
