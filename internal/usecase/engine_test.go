package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

// fakeAccountRepository is a plain map without locking, enough for
// single-goroutine engine tests.
type fakeAccountRepository struct {
	accounts map[domain.ClientID]*domain.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: make(map[domain.ClientID]*domain.Account)}
}

func (f *fakeAccountRepository) Upsert(_ context.Context, client domain.ClientID, fn func(*domain.Account) error) error {
	acc, ok := f.accounts[client]
	if !ok {
		acc = domain.NewAccount()
		f.accounts[client] = acc
	}
	return fn(acc)
}

func (f *fakeAccountRepository) Update(_ context.Context, client domain.ClientID, fn func(*domain.Account) error) error {
	acc, ok := f.accounts[client]
	if !ok {
		return domain.ErrAccountNotFound
	}
	return fn(acc)
}

func (f *fakeAccountRepository) Snapshot(_ context.Context, client domain.ClientID) (domain.Snapshot, error) {
	acc, ok := f.accounts[client]
	if !ok {
		return domain.Snapshot{}, domain.ErrAccountNotFound
	}
	return acc.Snapshot(client), nil
}

func (f *fakeAccountRepository) Snapshots(_ context.Context) ([]domain.Snapshot, error) {
	out := make([]domain.Snapshot, 0, len(f.accounts))
	for client, acc := range f.accounts {
		out = append(out, acc.Snapshot(client))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out, nil
}

func amount(t *testing.T, s string) domain.PositiveDecimal {
	t.Helper()

	p, err := domain.ParsePositiveDecimal(s)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", s, err)
	}
	return p
}

func newTestEngine(mode Mode) (*Engine, *fakeAccountRepository) {
	repo := newFakeAccountRepository()
	return NewEngine(repo, zerolog.Nop(), nil, mode), repo
}

func TestEngine_Deposit_CreatesAccount(t *testing.T) {
	engine, repo := newTestEngine(ModePermissive)
	ctx := context.Background()

	if err := engine.Deposit(ctx, 1, 101, amount(t, "100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.accounts) != 1 {
		t.Fatalf("expected one account, got %d", len(repo.accounts))
	}
	snap, err := engine.Snapshot(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Available.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected available 100, got %s", snap.Available)
	}
}

func TestEngine_Permissive_SwallowsPreconditionFailures(t *testing.T) {
	engine, repo := newTestEngine(ModePermissive)
	ctx := context.Background()

	// None of these touch an existing account; all must be silent no-ops.
	if err := engine.Withdraw(ctx, 9, 900, amount(t, "10")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := engine.Dispute(ctx, 9, 900); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := engine.Resolve(ctx, 9, 900); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := engine.Chargeback(ctx, 9, 900); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if len(repo.accounts) != 0 {
		t.Errorf("no-op events must not create accounts, got %d", len(repo.accounts))
	}
}

func TestEngine_Strict_ReturnsTypedFailures(t *testing.T) {
	engine, _ := newTestEngine(ModeStrict)
	ctx := context.Background()

	tests := []struct {
		name        string
		setup       func() error
		op          func() error
		expectedErr error
	}{
		{
			name:        "withdraw from unknown client",
			op:          func() error { return engine.Withdraw(ctx, 9, 900, amount(t, "10")) },
			expectedErr: domain.ErrAccountNotFound,
		},
		{
			name:        "withdraw over balance",
			setup:       func() error { return engine.Deposit(ctx, 1, 101, amount(t, "5")) },
			op:          func() error { return engine.Withdraw(ctx, 1, 102, amount(t, "10")) },
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name:        "dispute unknown transaction",
			setup:       func() error { return engine.Deposit(ctx, 2, 201, amount(t, "5")) },
			op:          func() error { return engine.Dispute(ctx, 2, 999) },
			expectedErr: domain.ErrTransactionNotFound,
		},
		{
			name: "withdraw from locked account",
			setup: func() error {
				if err := engine.Deposit(ctx, 3, 301, amount(t, "5")); err != nil {
					return err
				}
				if err := engine.Dispute(ctx, 3, 301); err != nil {
					return err
				}
				return engine.Chargeback(ctx, 3, 301)
			},
			op:          func() error { return engine.Withdraw(ctx, 3, 302, amount(t, "1")) },
			expectedErr: domain.ErrAccountLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				if err := tt.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			}

			err := tt.op()
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestEngine_Apply_DispatchesByKind(t *testing.T) {
	engine, _ := newTestEngine(ModePermissive)
	ctx := context.Background()

	events := []domain.Event{
		{Kind: domain.EventDeposit, Client: 1, Txn: 101, Amount: amount(t, "100")},
		{Kind: domain.EventDeposit, Client: 1, Txn: 102, Amount: amount(t, "20")},
		{Kind: domain.EventDispute, Client: 1, Txn: 102},
		{Kind: domain.EventChargeback, Client: 1, Txn: 102},
		{Kind: domain.EventDeposit, Client: 1, Txn: 103, Amount: amount(t, "111")},
		{Kind: domain.EventWithdrawal, Client: 1, Txn: 104, Amount: amount(t, "11")},
	}
	for _, ev := range events {
		if err := engine.Apply(ctx, ev); err != nil {
			t.Fatalf("unexpected error applying %v: %v", ev.Kind, err)
		}
	}

	snap, err := engine.Snapshot(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The withdrawal after the chargeback is ignored, the deposit applies.
	if !snap.Available.Equal(decimal.NewFromInt(211)) {
		t.Errorf("expected available 211, got %s", snap.Available)
	}
	if !snap.Held.IsZero() {
		t.Errorf("expected held 0, got %s", snap.Held)
	}
	if !snap.Total.Equal(decimal.NewFromInt(211)) {
		t.Errorf("expected total 211, got %s", snap.Total)
	}
	if !snap.Locked {
		t.Error("expected account to stay locked")
	}
}

func TestEngine_Apply_UnknownKind(t *testing.T) {
	engine, _ := newTestEngine(ModePermissive)

	err := engine.Apply(context.Background(), domain.Event{Kind: domain.EventKind(42)})
	if err == nil {
		t.Fatal("expected error for unknown event kind")
	}
}

func TestEngine_DisputeResolve_IsIdempotentOnBalances(t *testing.T) {
	engine, _ := newTestEngine(ModePermissive)
	ctx := context.Background()

	if err := engine.Deposit(ctx, 1, 101, amount(t, "100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := engine.Withdraw(ctx, 1, 102, amount(t, "20")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before, _ := engine.Snapshot(ctx, 1)

	if err := engine.Dispute(ctx, 1, 102); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mid, _ := engine.Snapshot(ctx, 1)
	// Withdrawal dispute pulls held negative and available back up; total is
	// a redistribution, never a change.
	if !mid.Available.Equal(decimal.NewFromInt(100)) || !mid.Held.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("unexpected mid-dispute balances: available=%s held=%s", mid.Available, mid.Held)
	}
	if !mid.Total.Equal(before.Total) {
		t.Errorf("dispute changed total: %s -> %s", before.Total, mid.Total)
	}

	if err := engine.Resolve(ctx, 1, 102); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := engine.Snapshot(ctx, 1)
	if !after.Available.Equal(before.Available) || !after.Held.Equal(before.Held) {
		t.Errorf("resolve did not restore balances: available=%s held=%s", after.Available, after.Held)
	}
}

func TestEngine_Chargeback_CountsLockedAccounts(t *testing.T) {
	repo := newFakeAccountRepository()
	m := metrics.New(nil)
	engine := NewEngine(repo, zerolog.Nop(), m, ModePermissive)
	ctx := context.Background()

	if err := engine.Deposit(ctx, 1, 101, amount(t, "100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := engine.Dispute(ctx, 1, 101); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := engine.Chargeback(ctx, 1, 101); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A repeated chargeback on the now-locked account is ignored and must not
	// count a second lock.
	if err := engine.Chargeback(ctx, 1, 101); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.AccountsLocked); got != 1 {
		t.Errorf("expected accounts_locked = 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.EventsIgnored.WithLabelValues("account_locked")); got != 1 {
		t.Errorf("expected events_ignored{reason=account_locked} = 1, got %v", got)
	}
}
