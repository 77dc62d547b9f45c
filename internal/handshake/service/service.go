// Package service implements the handshake coordinator: the two-phase
// initiate/complete flow that proves a completion request corresponds to a
// specific initiation before any credential is persisted.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"shoplink/internal/exchange"
	"shoplink/internal/handshake/metrics"
	sessionmodels "shoplink/internal/session/models"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// NoncePrimary is the authoritative pending-handshake store. Put overwrites
// any prior handshake for the tenant; Take is atomic fetch-and-delete.
type NoncePrimary interface {
	Put(ctx context.Context, domain tenantmodels.ShopDomain, nonce string, now time.Time, ttl time.Duration) error
	Take(ctx context.Context, domain tenantmodels.ShopDomain, now time.Time) (string, error)
}

// NonceFallback is the client-held carrier consulted only when the primary
// store misses. Keeping it behind an interface keeps the anti-replay
// algorithm testable independent of cookie transport.
type NonceFallback interface {
	Issue(nonce string) (string, error)
	Read(token string) (string, error)
	TTL() time.Duration
}

// CredentialExchanger trades an authorization code for credential material.
type CredentialExchanger interface {
	Exchange(ctx context.Context, domain tenantmodels.ShopDomain, code string) (*exchange.Result, error)
}

// CredentialWriter persists credential records.
type CredentialWriter interface {
	Put(ctx context.Context, credential *sessionmodels.Credential) error
}

// TenantRegistry registers tenants on first contact and looks up the
// current installation record.
type TenantRegistry interface {
	Ensure(ctx context.Context, domain tenantmodels.ShopDomain, now time.Time) (*tenantmodels.Tenant, error)
	FindByDomain(ctx context.Context, domain tenantmodels.ShopDomain) (*tenantmodels.Tenant, error)
}

// DeviceNamer turns a raw User-Agent into a short human label.
type DeviceNamer interface {
	DisplayName(userAgent string) string
}

// Config carries the platform app settings the coordinator needs.
type Config struct {
	// ClientID of the app registered with the platform.
	ClientID string
	// Scopes requested on the authorize redirect.
	Scopes []string
	// RedirectURI the platform sends the merchant back to.
	RedirectURI string
	// HandshakeTTL bounds a pending handshake. The carrier must be
	// constructed with the same value; New rejects mismatches.
	HandshakeTTL time.Duration
	// ExchangeTimeout bounds the code-exchange network call.
	ExchangeTimeout time.Duration
}

// Service coordinates handshakes. It holds no handshake state of its own;
// everything lives in the injected stores so a distributed deployment can
// swap them without touching the flow.
type Service struct {
	cfg       Config
	nonces    NoncePrimary
	fallback  NonceFallback
	exchanger CredentialExchanger
	creds     CredentialWriter
	tenants   TenantRegistry
	devices   DeviceNamer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
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

// WithDeviceNamer attaches a User-Agent labeler for credential records.
func WithDeviceNamer(d DeviceNamer) Option {
	return func(s *Service) {
		s.devices = d
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

// New constructs the coordinator with required collaborators and options
// applied. The fallback carrier's TTL must equal the handshake TTL so the two
// expiry layers cannot disagree.
func New(
	cfg Config,
	nonces NoncePrimary,
	fallback NonceFallback,
	exchanger CredentialExchanger,
	creds CredentialWriter,
	tenants TenantRegistry,
	opts ...Option,
) (*Service, error) {
	if nonces == nil || fallback == nil || exchanger == nil || creds == nil || tenants == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "nonces, fallback, exchanger, creds, and tenants are required")
	}
	if cfg.HandshakeTTL <= 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "handshake ttl must be positive")
	}
	if fallback.TTL() != cfg.HandshakeTTL {
		return nil, dErrors.New(dErrors.CodeInternal, "carrier ttl must equal handshake ttl")
	}
	s := &Service{
		cfg:       cfg,
		nonces:    nonces,
		fallback:  fallback,
		exchanger: exchanger,
		creds:     creds,
		tenants:   tenants,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    otel.Tracer("shoplink/handshake"),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}
