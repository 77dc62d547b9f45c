package store

import (
	"context"
	"sync"
	"time"

	"shoplink/internal/session/models"
	tenant "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// ErrNotFound is returned when no credential exists for the requested
// (tenant, kind) pair. Callers should check for it using errors.Is.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "credential not found")

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures (future: DB errors, network issues, etc.)

type tenantCredentials struct {
	background  *models.Credential
	interactive map[string]*models.Credential // keyed by credential ID
}

// InMemorySessionStore maps tenants to their credential records. A tenant
// holds at most one background credential (Put replaces, never duplicates)
// and any number of interactive ones.
type InMemorySessionStore struct {
	mu      sync.RWMutex
	tenants map[tenant.ShopDomain]*tenantCredentials
	now     func() time.Time
}

type Option func(*InMemorySessionStore)

// WithTimeFunc overrides the clock used to filter expired interactive
// credentials on Get.
func WithTimeFunc(now func() time.Time) Option {
	return func(s *InMemorySessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewInMemorySessionStore(opts ...Option) *InMemorySessionStore {
	s := &InMemorySessionStore{
		tenants: make(map[tenant.ShopDomain]*tenantCredentials),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Put upserts a credential. Background credentials replace the tenant's
// existing one; interactive credentials upsert by credential ID. Writes for
// the same tenant are serialized, so the last writer wins and no partial
// record is ever visible.
func (s *InMemorySessionStore) Put(_ context.Context, credential *models.Credential) error {
	if !credential.Kind.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown credential kind")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tc, ok := s.tenants[credential.ShopDomain]
	if !ok {
		tc = &tenantCredentials{interactive: make(map[string]*models.Credential)}
		s.tenants[credential.ShopDomain] = tc
	}

	switch credential.Kind {
	case models.KindBackground:
		if tc.background != nil {
			// Replacement keeps the original identity and creation time.
			credential.ID = tc.background.ID
			credential.CreatedAt = tc.background.CreatedAt
		}
		tc.background = credential
	case models.KindInteractive:
		if existing, ok := tc.interactive[credential.ID.String()]; ok {
			credential.CreatedAt = existing.CreatedAt
		}
		tc.interactive[credential.ID.String()] = credential
	}
	return nil
}

// Get returns the tenant's credential of the given kind. For interactive
// credentials the most recently updated unexpired record is selected.
func (s *InMemorySessionStore) Get(_ context.Context, domain tenant.ShopDomain, kind models.Kind) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tc, ok := s.tenants[domain]
	if !ok {
		return nil, ErrNotFound
	}

	switch kind {
	case models.KindBackground:
		if tc.background == nil {
			return nil, ErrNotFound
		}
		return tc.background, nil
	case models.KindInteractive:
		var freshest *models.Credential
		now := s.now()
		for _, c := range tc.interactive {
			if c.Expired(now) {
				continue
			}
			if freshest == nil || c.UpdatedAt.After(freshest.UpdatedAt) {
				freshest = c
			}
		}
		if freshest == nil {
			return nil, ErrNotFound
		}
		return freshest, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown credential kind")
	}
}

// Delete removes the tenant's credentials of the given kind. Used by the
// revocation webhook when the platform reports uninstallation.
func (s *InMemorySessionStore) Delete(_ context.Context, domain tenant.ShopDomain, kind models.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tc, ok := s.tenants[domain]
	if !ok {
		return ErrNotFound
	}

	switch kind {
	case models.KindBackground:
		if tc.background == nil {
			return ErrNotFound
		}
		tc.background = nil
	case models.KindInteractive:
		if len(tc.interactive) == 0 {
			return ErrNotFound
		}
		tc.interactive = make(map[string]*models.Credential)
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "unknown credential kind")
	}
	return nil
}

// DeleteByTenant removes every credential held for the tenant, background
// and interactive alike, and reports how many were removed. Used by the
// revocation webhook; absent tenants count as zero, not an error, so
// webhook retries stay idempotent.
func (s *InMemorySessionStore) DeleteByTenant(_ context.Context, domain tenant.ShopDomain) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tc, ok := s.tenants[domain]
	if !ok {
		return 0, nil
	}
	removed := len(tc.interactive)
	if tc.background != nil {
		removed++
	}
	delete(s.tenants, domain)
	return removed, nil
}

// DeleteExpired removes interactive credentials past their expiry.
// The time parameter is injected for testability (no hidden time.Now() calls).
func (s *InMemorySessionStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deletedCount := 0
	for _, tc := range s.tenants {
		for id, c := range tc.interactive {
			if c.Expired(now) {
				delete(tc.interactive, id)
				deletedCount++
			}
		}
	}
	return deletedCount, nil
}
