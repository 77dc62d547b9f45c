// Package binding maps provisioned external caller identifiers (for example
// a voice-assistant instance id) to the tenant that owns them. The mapping is
// written by provisioning and is read-only to the session resolver; that
// indirection is the tenant-isolation boundary.
package binding

import (
	"context"
	"sync"
	"time"

	tenant "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// ErrNotFound is returned when no binding exists for a caller identifier.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "binding not found")

// Binding attaches an external caller identifier to a tenant.
type Binding struct {
	CallerID   string
	ShopDomain tenant.ShopDomain
	CreatedAt  time.Time
}

type InMemoryBindingStore struct {
	mu       sync.RWMutex
	bindings map[string]*Binding
}

func NewInMemoryBindingStore() *InMemoryBindingStore {
	return &InMemoryBindingStore{
		bindings: make(map[string]*Binding),
	}
}

// Put records a binding, replacing any prior tenant for the same caller.
func (s *InMemoryBindingStore) Put(_ context.Context, b *Binding) error {
	if b.CallerID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "caller id cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[b.CallerID] = b
	return nil
}

// FindTenant resolves a caller identifier to its owning tenant.
func (s *InMemoryBindingStore) FindTenant(_ context.Context, callerID string) (tenant.ShopDomain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.bindings[callerID]; ok {
		return b.ShopDomain, nil
	}
	return "", ErrNotFound
}

// DeleteByTenant removes all bindings owned by a tenant, used when the
// platform reports uninstallation.
func (s *InMemoryBindingStore) DeleteByTenant(_ context.Context, domain tenant.ShopDomain) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for callerID, b := range s.bindings {
		if b.ShopDomain == domain {
			delete(s.bindings, callerID)
			deleted++
		}
	}
	return deleted, nil
}
