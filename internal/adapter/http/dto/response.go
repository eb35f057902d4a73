package dto

import "github.com/iho/payengine/internal/domain"

// AccountResponse is the JSON representation of an account snapshot. Amounts
// use the same rendering as the CSV output.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// AccountFromSnapshot converts a domain snapshot.
func AccountFromSnapshot(s domain.Snapshot) AccountResponse {
	return AccountResponse{
		Client:    uint16(s.Client),
		Available: domain.FormatAmount(s.Available),
		Held:      domain.FormatAmount(s.Held),
		Total:     domain.FormatAmount(s.Total),
		Locked:    s.Locked,
	}
}

// AccountsFromSnapshots converts a slice of domain snapshots.
func AccountsFromSnapshots(snaps []domain.Snapshot) []AccountResponse {
	out := make([]AccountResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, AccountFromSnapshot(s))
	}
	return out
}

// ListAccountsResponse is the response for listing account snapshots.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
}

// EventResponse acknowledges an applied event.
type EventResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
