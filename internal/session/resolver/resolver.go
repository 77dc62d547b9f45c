// Package resolver walks an opaque external caller identifier to a usable
// credential: caller -> tenant binding, then tenant -> background credential.
//
// The resolver never accepts a tenant identifier directly from an untrusted
// caller in place of the binding lookup; the indirection is what keeps one
// tenant's credential from being served to another tenant's caller.
package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	bindingstore "shoplink/internal/binding"
	"shoplink/internal/session/metrics"
	"shoplink/internal/session/models"
	sessionstore "shoplink/internal/session/store"
	tenant "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

var (
	// ErrUnknownCaller is returned when no binding exists for the caller.
	ErrUnknownCaller = dErrors.New(dErrors.CodeUnknownCaller, "unknown caller")
	// ErrNotAuthenticated is returned when the caller is bound to a tenant
	// that has not completed a handshake yet.
	ErrNotAuthenticated = dErrors.New(dErrors.CodeNotAuthenticated, "tenant not yet authorized")
)

// BindingReader resolves a caller identifier to its owning tenant.
type BindingReader interface {
	FindTenant(ctx context.Context, callerID string) (tenant.ShopDomain, error)
}

// CredentialReader fetches a tenant's stored credential of a given kind.
type CredentialReader interface {
	Get(ctx context.Context, domain tenant.ShopDomain, kind models.Kind) (*models.Credential, error)
}

// Resolver performs the two-hop caller -> tenant -> credential lookup.
type Resolver struct {
	bindings    BindingReader
	credentials CredentialReader
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New constructs a Resolver over the binding and credential stores.
func New(bindings BindingReader, credentials CredentialReader, opts ...Option) (*Resolver, error) {
	if bindings == nil || credentials == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "bindings and credentials stores are required")
	}
	r := &Resolver{
		bindings:    bindings,
		credentials: credentials,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:      otel.Tracer("shoplink/session/resolver"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Resolve returns the background credential for the tenant that owns the
// given caller. Background credentials are preferred for server-to-server
// calls because they are not tied to a single end-user session.
func (r *Resolver) Resolve(ctx context.Context, callerID string) (*models.Credential, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "resolver.Resolve")
	defer span.End()
	defer func() {
		if r.metrics != nil {
			r.metrics.ResolveRequests.Inc()
			r.metrics.ResolveDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		}
	}()

	if callerID == "" {
		return nil, r.fail(ctx, "unknown_caller", ErrUnknownCaller, callerID)
	}

	domain, err := r.bindings.FindTenant(ctx, callerID)
	if err != nil {
		if errors.Is(err, bindingstore.ErrNotFound) {
			return nil, r.fail(ctx, "unknown_caller", ErrUnknownCaller, callerID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve caller binding")
	}
	span.SetAttributes(attribute.String("tenant.shop_domain", domain.String()))

	credential, err := r.credentials.Get(ctx, domain, models.KindBackground)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, r.fail(ctx, "not_authenticated", ErrNotAuthenticated, callerID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load tenant credential")
	}
	if credential.Expired(time.Now()) {
		return nil, r.fail(ctx, "not_authenticated", ErrNotAuthenticated, callerID)
	}

	return credential, nil
}

func (r *Resolver) fail(ctx context.Context, reason string, err error, callerID string) error {
	if r.metrics != nil {
		r.metrics.ResolveFailures.WithLabelValues(reason).Inc()
	}
	r.logger.InfoContext(ctx, "credential resolution failed",
		"reason", reason,
		"caller_id", callerID,
	)
	return err
}
