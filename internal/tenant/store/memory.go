package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// ErrNotFound is returned when a requested tenant does not exist.
// Callers should check for it using errors.Is.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "tenant not found")

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures (future: DB errors, network issues, etc.)
//
// In-memory stores keep the initial implementation lightweight and testable.
// They intentionally favor clarity over performance.

type InMemoryTenantStore struct {
	mu      sync.RWMutex
	tenants map[models.ShopDomain]*models.Tenant
}

func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		tenants: make(map[models.ShopDomain]*models.Tenant),
	}
}

// Ensure registers the tenant on first contact and reactivates an inactive
// one on reinstall. Returns the current record either way.
func (s *InMemoryTenantStore) Ensure(_ context.Context, domain models.ShopDomain, now time.Time) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.tenants[domain]; ok {
		if existing.Status == models.TenantStatusInactive {
			existing.Status = models.TenantStatusActive
			existing.UpdatedAt = now
		}
		cp := *existing
		return &cp, nil
	}
	tenant := &models.Tenant{
		ID:         uuid.New(),
		ShopDomain: domain,
		Status:     models.TenantStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.tenants[domain] = tenant
	cp := *tenant
	return &cp, nil
}

// FindByDomain returns a copy of the tenant record. The store keeps the
// canonical record private so callers never observe a concurrent mutation.
func (s *InMemoryTenantStore) FindByDomain(_ context.Context, domain models.ShopDomain) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tenant, ok := s.tenants[domain]; ok {
		cp := *tenant
		return &cp, nil
	}
	return nil, ErrNotFound
}

// Deactivate marks the tenant inactive. Tenants are never deleted.
func (s *InMemoryTenantStore) Deactivate(_ context.Context, domain models.ShopDomain, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[domain]
	if !ok {
		return ErrNotFound
	}
	tenant.Deactivate(now)
	return nil
}
