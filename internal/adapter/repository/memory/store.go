// Package memory provides in-memory AccountRepository implementations.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iho/payengine/internal/domain"
)

// Store is a single-mutex in-memory account repository. All mutations and
// snapshot reads serialize on one lock, which trivially satisfies the
// per-client consistency contract. Good enough for single-goroutine feeds.
type Store struct {
	mu       sync.Mutex
	accounts map[domain.ClientID]*domain.Account
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{accounts: make(map[domain.ClientID]*domain.Account)}
}

func (s *Store) Upsert(_ context.Context, client domain.ClientID, fn func(*domain.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[client]
	if !ok {
		acc = domain.NewAccount()
		s.accounts[client] = acc
	}
	return fn(acc)
}

func (s *Store) Update(_ context.Context, client domain.ClientID, fn func(*domain.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[client]
	if !ok {
		return domain.ErrAccountNotFound
	}
	return fn(acc)
}

func (s *Store) Snapshot(_ context.Context, client domain.ClientID) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[client]
	if !ok {
		return domain.Snapshot{}, domain.ErrAccountNotFound
	}
	return acc.Snapshot(client), nil
}

func (s *Store) Snapshots(_ context.Context) ([]domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Snapshot, 0, len(s.accounts))
	for client, acc := range s.accounts {
		out = append(out, acc.Snapshot(client))
	}
	sortSnapshots(out)
	return out, nil
}

func sortSnapshots(snaps []domain.Snapshot) {
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Client < snaps[j].Client })
}
