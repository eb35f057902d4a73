package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

// Mode selects how the engine reports precondition failures.
type Mode int

const (
	// ModePermissive treats a failed precondition as a no-op: the event is
	// dropped with a debug log and processing continues. Suitable for
	// untrusted, unordered feeds where one stale event must not abort the
	// stream.
	ModePermissive Mode = iota

	// ModeStrict returns precondition failures to the caller as typed errors
	// without mutating any state.
	ModeStrict
)

// Engine is the ledger store: it owns the client-to-account mapping through
// an AccountRepository and applies one transaction event at a time.
type Engine struct {
	accounts AccountRepository
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	mode     Mode
}

// NewEngine creates an Engine. metrics may be nil.
func NewEngine(accounts AccountRepository, logger zerolog.Logger, m *metrics.Metrics, mode Mode) *Engine {
	return &Engine{
		accounts: accounts,
		logger:   logger,
		metrics:  m,
		mode:     mode,
	}
}

// Apply routes an event to the operation matching its kind. This is the sole
// entry point used by the input boundaries.
func (e *Engine) Apply(ctx context.Context, event domain.Event) error {
	switch event.Kind {
	case domain.EventDeposit:
		return e.Deposit(ctx, event.Client, event.Txn, event.Amount)
	case domain.EventWithdrawal:
		return e.Withdraw(ctx, event.Client, event.Txn, event.Amount)
	case domain.EventDispute:
		return e.Dispute(ctx, event.Client, event.Txn)
	case domain.EventResolve:
		return e.Resolve(ctx, event.Client, event.Txn)
	case domain.EventChargeback:
		return e.Chargeback(ctx, event.Client, event.Txn)
	default:
		return fmt.Errorf("unknown event kind %d", event.Kind)
	}
}

// Deposit credits the client's account, creating it on first use. Deposits
// succeed even on a locked account.
func (e *Engine) Deposit(ctx context.Context, client domain.ClientID, txn domain.TxnID, amount domain.PositiveDecimal) error {
	err := e.accounts.Upsert(ctx, client, func(acc *domain.Account) error {
		acc.Deposit(txn, amount)
		return nil
	})
	return e.outcome(domain.EventDeposit, client, txn, err)
}

// Withdraw debits the client's account when it is unlocked and has sufficient
// available funds.
func (e *Engine) Withdraw(ctx context.Context, client domain.ClientID, txn domain.TxnID, amount domain.PositiveDecimal) error {
	err := e.accounts.Update(ctx, client, func(acc *domain.Account) error {
		return acc.Withdraw(txn, amount)
	})
	return e.outcome(domain.EventWithdrawal, client, txn, err)
}

// Dispute places a previously recorded transaction under dispute.
func (e *Engine) Dispute(ctx context.Context, client domain.ClientID, txn domain.TxnID) error {
	err := e.accounts.Update(ctx, client, func(acc *domain.Account) error {
		return acc.Dispute(txn)
	})
	return e.outcome(domain.EventDispute, client, txn, err)
}

// Resolve releases a disputed transaction, restoring the pre-dispute
// balances.
func (e *Engine) Resolve(ctx context.Context, client domain.ClientID, txn domain.TxnID) error {
	err := e.accounts.Update(ctx, client, func(acc *domain.Account) error {
		return acc.Resolve(txn)
	})
	return e.outcome(domain.EventResolve, client, txn, err)
}

// Chargeback permanently reverses a disputed transaction and locks the
// account.
func (e *Engine) Chargeback(ctx context.Context, client domain.ClientID, txn domain.TxnID) error {
	err := e.accounts.Update(ctx, client, func(acc *domain.Account) error {
		return acc.Chargeback(txn)
	})
	if err == nil && e.metrics != nil {
		e.metrics.AccountsLocked.Inc()
	}
	return e.outcome(domain.EventChargeback, client, txn, err)
}

// Snapshots returns one summary per known client, sorted by client id.
func (e *Engine) Snapshots(ctx context.Context) ([]domain.Snapshot, error) {
	return e.accounts.Snapshots(ctx)
}

// Snapshot returns the summary for a single client.
func (e *Engine) Snapshot(ctx context.Context, client domain.ClientID) (domain.Snapshot, error) {
	return e.accounts.Snapshot(ctx, client)
}

// outcome applies the engine's error-handling mode to an operation result.
func (e *Engine) outcome(kind domain.EventKind, client domain.ClientID, txn domain.TxnID, err error) error {
	if err == nil {
		if e.metrics != nil {
			e.metrics.EventsProcessed.WithLabelValues(kind.String()).Inc()
		}
		return nil
	}

	if e.metrics != nil {
		e.metrics.EventsIgnored.WithLabelValues(ignoreReason(err)).Inc()
	}

	if e.mode == ModeStrict {
		return fmt.Errorf("%s for client %d tx %d: %w", kind, client, txn, err)
	}

	e.logger.Debug().
		Stringer("type", kind).
		Uint16("client", uint16(client)).
		Uint32("tx", uint32(txn)).
		Err(err).
		Msg("ignoring event")
	return nil
}

func ignoreReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "other"
	}
}
