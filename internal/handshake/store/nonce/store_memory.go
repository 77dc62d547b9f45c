// Package nonce holds the pending-handshake state between initiation and
// completion. The store is authoritative for the handshake's short lifetime;
// the carrier token is the fallback when this state is lost.
package nonce

import (
	"context"
	"sync"
	"time"

	tenant "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// ErrNotFound is returned when no live pending handshake exists for the
// tenant. Missing, expired, and already-consumed entries are indistinguishable
// on purpose: the coordinator treats all three as the same validation failure
// so callers get no oracle about which one occurred.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "pending handshake not found")

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures (future: DB errors, network issues, etc.)

type record struct {
	nonce     string
	createdAt time.Time
	expiresAt time.Time
}

const shardCount = 32

// Operations for the same tenant always hit the same shard, so they are
// linearizable; tenants in different shards never contend on a lock.
type shard struct {
	mu      sync.Mutex
	entries map[tenant.ShopDomain]*record
}

// InMemoryNonceStore maps each tenant to at most one pending handshake nonce
// with an absolute expiry. Locking is sharded by tenant so concurrent
// handshakes for different tenants fully parallelize.
type InMemoryNonceStore struct {
	shards [shardCount]shard
}

func NewInMemoryNonceStore() *InMemoryNonceStore {
	s := &InMemoryNonceStore{}
	for i := range s.shards {
		s.shards[i].entries = make(map[tenant.ShopDomain]*record)
	}
	return s
}

func (s *InMemoryNonceStore) shardFor(domain tenant.ShopDomain) *shard {
	return &s.shards[hashString(string(domain))%shardCount]
}

// hashString provides a simple multiplicative hash for shard selection.
func hashString(v string) uint32 {
	var h uint32
	for i := 0; i < len(v); i++ {
		h = h*31 + uint32(v[i])
	}
	return h
}

// Put records the pending handshake for the tenant, overwriting any existing
// one. The previous nonce is orphaned and can never validate again.
func (s *InMemoryNonceStore) Put(_ context.Context, domain tenant.ShopDomain, nonce string, now time.Time, ttl time.Duration) error {
	if nonce == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "nonce cannot be empty")
	}
	sh := s.shardFor(domain)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.entries[domain] = &record{
		nonce:     nonce,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// Take atomically retrieves and removes the tenant's pending nonce. Expired
// entries are deleted and reported as absent; a nonce can be taken at most
// once.
func (s *InMemoryNonceStore) Take(_ context.Context, domain tenant.ShopDomain, now time.Time) (string, error) {
	sh := s.shardFor(domain)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.entries[domain]
	if !ok {
		return "", ErrNotFound
	}
	delete(sh.entries, domain)
	if rec.expiresAt.Before(now) {
		return "", ErrNotFound
	}
	return rec.nonce, nil
}

// DeleteExpired removes all entries past expiry, bounding memory growth under
// abandoned handshakes. It uses the same per-shard locks as the request path,
// so a sweep never races a Take.
func (s *InMemoryNonceStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	deletedCount := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for domain, rec := range sh.entries {
			if rec.expiresAt.Before(now) {
				delete(sh.entries, domain)
				deletedCount++
			}
		}
		sh.mu.Unlock()
	}
	return deletedCount, nil
}

// Reset drops all pending handshakes. Part of the store lifecycle so a
// deployment can flush state on shutdown; tests use it to simulate restart.
func (s *InMemoryNonceStore) Reset(_ context.Context) error {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.entries = make(map[tenant.ShopDomain]*record)
		sh.mu.Unlock()
	}
	return nil
}
