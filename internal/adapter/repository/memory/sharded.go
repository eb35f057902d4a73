package memory

import (
	"context"
	"sync"

	"github.com/iho/payengine/internal/domain"
)

// DefaultShardCount is used when NewShardedStore receives a non-positive
// shard count.
const DefaultShardCount = 32

// ShardedStore spreads clients across independently locked shards so events
// for different clients can be applied concurrently. Events for the same
// client always hash to the same shard and therefore serialize.
type ShardedStore struct {
	shards []*shard
}

type shard struct {
	mu       sync.Mutex
	accounts map[domain.ClientID]*domain.Account
}

// NewShardedStore creates a store with n shards.
func NewShardedStore(n int) *ShardedStore {
	if n <= 0 {
		n = DefaultShardCount
	}
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{accounts: make(map[domain.ClientID]*domain.Account)}
	}
	return &ShardedStore{shards: shards}
}

func (s *ShardedStore) shardFor(client domain.ClientID) *shard {
	return s.shards[int(client)%len(s.shards)]
}

func (s *ShardedStore) Upsert(_ context.Context, client domain.ClientID, fn func(*domain.Account) error) error {
	sh := s.shardFor(client)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	acc, ok := sh.accounts[client]
	if !ok {
		acc = domain.NewAccount()
		sh.accounts[client] = acc
	}
	return fn(acc)
}

func (s *ShardedStore) Update(_ context.Context, client domain.ClientID, fn func(*domain.Account) error) error {
	sh := s.shardFor(client)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	acc, ok := sh.accounts[client]
	if !ok {
		return domain.ErrAccountNotFound
	}
	return fn(acc)
}

func (s *ShardedStore) Snapshot(_ context.Context, client domain.ClientID) (domain.Snapshot, error) {
	sh := s.shardFor(client)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	acc, ok := sh.accounts[client]
	if !ok {
		return domain.Snapshot{}, domain.ErrAccountNotFound
	}
	return acc.Snapshot(client), nil
}

// Snapshots collects per-shard summaries. Each shard is locked while its
// accounts are read, so every account appears with a consistent
// available/held pair.
func (s *ShardedStore) Snapshots(_ context.Context) ([]domain.Snapshot, error) {
	var out []domain.Snapshot
	for _, sh := range s.shards {
		sh.mu.Lock()
		for client, acc := range sh.accounts {
			out = append(out, acc.Snapshot(client))
		}
		sh.mu.Unlock()
	}
	sortSnapshots(out)
	return out, nil
}
