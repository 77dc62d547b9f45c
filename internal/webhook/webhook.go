// Package webhook processes platform lifecycle notifications. The only one
// that matters for credential hygiene is app/uninstalled: the platform has
// already revoked the access token, so local state must be purged before a
// resolver hands out a dead credential.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log/slog"
	"time"

	"shoplink/internal/session/metrics"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// ErrBadSignature rejects payloads whose digest does not match the shared
// webhook secret.
var ErrBadSignature = dErrors.New(dErrors.CodeUnauthorized, "webhook signature mismatch")

// VerifySignature checks the platform's HMAC-SHA256 digest over the raw
// request body. The header carries the digest base64-encoded.
func VerifySignature(secret string, body []byte, signature string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

// CredentialRemover deletes stored credentials for a tenant.
type CredentialRemover interface {
	DeleteByTenant(ctx context.Context, domain tenantmodels.ShopDomain) (int, error)
}

// TenantDeactivator marks a tenant inactive.
type TenantDeactivator interface {
	Deactivate(ctx context.Context, domain tenantmodels.ShopDomain, now time.Time) error
}

// BindingRemover drops caller bindings pointing at a tenant.
type BindingRemover interface {
	DeleteByTenant(ctx context.Context, domain tenantmodels.ShopDomain) (int, error)
}

// Service purges local state when the platform revokes an installation.
type Service struct {
	creds    CredentialRemover
	tenants  TenantDeactivator
	bindings BindingRemover
	logger   *slog.Logger
	metrics  *metrics.Metrics
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

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
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

// New constructs the webhook service.
func New(creds CredentialRemover, tenants TenantDeactivator, bindings BindingRemover, opts ...Option) (*Service, error) {
	if creds == nil || tenants == nil || bindings == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "creds, tenants, and bindings are required")
	}
	s := &Service{
		creds:    creds,
		tenants:  tenants,
		bindings: bindings,
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

// HandleUninstalled removes every trace of the tenant's authorization:
// credentials, caller bindings, and finally the tenant's active status. The
// operation is idempotent so the platform's webhook retries are harmless.
func (s *Service) HandleUninstalled(ctx context.Context, rawShop string) error {
	domain, err := tenantmodels.ParseShopDomain(rawShop)
	if err != nil {
		return err
	}

	removed, err := s.creds.DeleteByTenant(ctx, domain)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "remove credentials")
	}
	if s.metrics != nil && removed > 0 {
		s.metrics.CredentialsRevoked.Add(float64(removed))
	}

	unbound, err := s.bindings.DeleteByTenant(ctx, domain)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "remove bindings")
	}

	if err := s.tenants.Deactivate(ctx, domain, s.now()); err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "deactivate tenant")
	}

	s.logger.InfoContext(ctx, "installation revoked",
		"shop", domain.String(),
		"credentials_removed", removed,
		"bindings_removed", unbound,
	)
	return nil
}
