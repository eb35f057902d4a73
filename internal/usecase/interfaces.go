package usecase

import (
	"context"

	"github.com/iho/payengine/internal/domain"
)

// AccountRepository defines storage for accounts keyed by client id.
//
// Implementations must serialize mutations per client (at most one in-flight
// mutation per account) and give Snapshot/Snapshots a consistent per-account
// view: an account's available and held are never observed mid-update.
type AccountRepository interface {
	// Upsert runs fn against the client's account, creating it with zero
	// balances when absent.
	Upsert(ctx context.Context, client domain.ClientID, fn func(*domain.Account) error) error

	// Update runs fn against an existing account. It returns
	// domain.ErrAccountNotFound when the client is unknown.
	Update(ctx context.Context, client domain.ClientID, fn func(*domain.Account) error) error

	// Snapshot returns the summary for a single client, or
	// domain.ErrAccountNotFound.
	Snapshot(ctx context.Context, client domain.ClientID) (domain.Snapshot, error)

	// Snapshots returns one summary per known client, ordered by ascending
	// client id regardless of insertion order.
	Snapshots(ctx context.Context) ([]domain.Snapshot, error)
}
