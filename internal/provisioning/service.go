// Package provisioning links external assistant callers to tenants. A
// binding is what lets a later credential resolution map an opaque caller
// identifier to a shop without the caller ever holding the shop's token.
package provisioning

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	bindingstore "shoplink/internal/binding"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// BindingWriter persists caller-to-tenant links.
type BindingWriter interface {
	Put(ctx context.Context, b *bindingstore.Binding) error
}

// TenantReader looks up registered tenants.
type TenantReader interface {
	FindByDomain(ctx context.Context, domain tenantmodels.ShopDomain) (*tenantmodels.Tenant, error)
}

// Service registers assistant caller bindings.
type Service struct {
	bindings BindingWriter
	tenants  TenantReader
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeFunc overrides the clock, for tests.
func WithTimeFunc(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs the provisioning service.
func New(bindings BindingWriter, tenants TenantReader, opts ...Option) (*Service, error) {
	if bindings == nil || tenants == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "bindings and tenants are required")
	}
	s := &Service{
		bindings: bindings,
		tenants:  tenants,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Bind links an external caller identifier to a tenant, replacing any prior
// binding for that caller. The tenant must already exist and be active: a
// binding to an uninstalled shop would resolve to a revoked credential.
func (s *Service) Bind(ctx context.Context, callerID, rawShop string) (*bindingstore.Binding, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "caller id cannot be empty")
	}

	domain, err := tenantmodels.ParseShopDomain(rawShop)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.FindByDomain(ctx, domain)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "look up tenant")
	}
	if !tenant.IsActive() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant is inactive")
	}

	b := &bindingstore.Binding{
		CallerID:   callerID,
		ShopDomain: domain,
		CreatedAt:  s.now(),
	}
	if err := s.bindings.Put(ctx, b); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist binding")
	}

	s.logger.InfoContext(ctx, "caller bound to tenant",
		"caller_id", callerID,
		"shop", domain.String(),
	)
	return b, nil
}
