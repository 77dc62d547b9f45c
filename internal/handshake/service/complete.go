package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"shoplink/internal/handshake/models"
	sessionmodels "shoplink/internal/session/models"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// Complete finishes a handshake: it recovers the expected nonce (primary
// store first, carrier token only on a miss), verifies the returned state in
// constant time, exchanges the authorization code, and upserts the tenant's
// background credential. Every failure is terminal for the handshake; the
// merchant restarts from Initiate.
func (s *Service) Complete(ctx context.Context, params models.CompleteParams) (*sessionmodels.Credential, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "handshake.Complete")
	defer span.End()
	defer func() {
		if s.metrics != nil {
			s.metrics.CompleteDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		}
	}()

	domain, err := tenantmodels.ParseShopDomain(params.Shop)
	if err != nil {
		return nil, s.failCompletion(ctx, "invalid_tenant", ErrInvalidTenant, "")
	}
	span.SetAttributes(attribute.String("tenant.shop_domain", domain.String()))

	expected, err := s.recoverNonce(ctx, domain, params.CarrierToken, start)
	if err != nil {
		// A store failure is not a handshake miss; keep the counters honest.
		return nil, s.failCompletion(ctx, string(dErrors.CodeOf(err)), err, domain.String())
	}

	// Constant-time comparison: the state parameter came from an untrusted
	// redirect and must not be comparable via timing.
	if subtle.ConstantTimeCompare([]byte(expected), []byte(params.ReturnedState)) != 1 {
		s.logReplaySuspected(ctx, domain)
		if s.metrics != nil {
			s.metrics.HandshakeFailures.WithLabelValues("state_mismatch").Inc()
		}
		return nil, ErrStateMismatch
	}

	exchangeCtx := ctx
	if s.cfg.ExchangeTimeout > 0 {
		var cancel context.CancelFunc
		exchangeCtx, cancel = context.WithTimeout(ctx, s.cfg.ExchangeTimeout)
		defer cancel()
	}
	result, err := s.exchanger.Exchange(exchangeCtx, domain, params.Code)
	if err != nil {
		s.logExchangeFailed(ctx, domain, err)
		if s.metrics != nil {
			s.metrics.HandshakeFailures.WithLabelValues("exchange_failed").Inc()
		}
		// Always reported as exchange_failed regardless of the underlying
		// cause; the distinction stays in the log, not the caller response.
		return nil, &dErrors.Error{Code: dErrors.CodeExchangeFailed, Message: "authorization code exchange failed", Err: err}
	}

	credential := &sessionmodels.Credential{
		ID:         uuid.New(),
		ShopDomain: domain,
		Kind:       sessionmodels.KindBackground,
		Token:      result.AccessToken,
		Scopes:     result.Scopes,
		DeviceName: s.deviceName(params.UserAgent),
		ExpiresAt:  result.ExpiresAt,
		CreatedAt:  start,
		UpdatedAt:  start,
	}
	if err := s.creds.Put(ctx, credential); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist credential")
	}

	s.logCompleted(ctx, domain, credential)
	if s.metrics != nil {
		s.metrics.HandshakesCompleted.Inc()
	}
	return credential, nil
}

// recoverNonce consumes the primary store entry, falling back to the carrier
// token only when the store misses (restart, different instance). Both
// missing yields the uniform not-found failure.
func (s *Service) recoverNonce(ctx context.Context, domain tenantmodels.ShopDomain, carrierToken string, now time.Time) (string, error) {
	nonce, err := s.nonces.Take(ctx, domain, now)
	if err == nil {
		return nonce, nil
	}
	if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "consume pending handshake")
	}

	nonce, err = s.fallback.Read(carrierToken)
	if err != nil {
		return "", ErrHandshakeNotFound
	}
	if s.metrics != nil {
		s.metrics.CarrierFallbackReads.Inc()
	}
	s.logger.InfoContext(ctx, "nonce recovered from carrier token", "shop", domain.String())
	return nonce, nil
}

func (s *Service) deviceName(userAgent string) string {
	if s.devices == nil || userAgent == "" {
		return ""
	}
	return s.devices.DisplayName(userAgent)
}
