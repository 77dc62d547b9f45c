package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"shoplink/internal/handshake/models"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
	"shoplink/pkg/secrets"
)

const authorizePath = "/admin/oauth/authorize"

// nonceBytes yields 128 bits of entropy, the floor for the anti-replay state.
const nonceBytes = 16

// Initiate starts a handshake for the given shop: it registers the tenant on
// first contact, mints a fresh nonce, records it in the primary store,
// issues the fallback carrier token, and returns the authorize redirect.
// A second Initiate for the same tenant orphans the prior handshake.
func (s *Service) Initiate(ctx context.Context, rawShop string) (*models.InitiateResult, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "handshake.Initiate")
	defer span.End()
	defer func() {
		if s.metrics != nil {
			s.metrics.InitiateDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		}
	}()

	domain, err := tenantmodels.ParseShopDomain(rawShop)
	if err != nil {
		return nil, ErrInvalidTenant
	}
	span.SetAttributes(attribute.String("tenant.shop_domain", domain.String()))

	if _, err := s.tenants.Ensure(ctx, domain, start); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "register tenant")
	}

	nonce, err := secrets.GenerateNonce(nonceBytes)
	if err != nil {
		return nil, err
	}

	if err := s.nonces.Put(ctx, domain, nonce, start, s.cfg.HandshakeTTL); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "record pending handshake")
	}

	carrierToken, err := s.fallback.Issue(nonce)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "issue carrier token")
	}

	s.logInitiated(ctx, domain)

	return &models.InitiateResult{
		ShopDomain:   domain,
		AuthorizeURL: s.authorizeURL(domain, nonce),
		CarrierToken: carrierToken,
		CarrierTTL:   s.cfg.HandshakeTTL,
	}, nil
}

// authorizeURL builds the platform redirect with the nonce embedded as the
// anti-replay state parameter.
func (s *Service) authorizeURL(domain tenantmodels.ShopDomain, nonce string) string {
	q := url.Values{}
	q.Set("client_id", s.cfg.ClientID)
	q.Set("scope", strings.Join(s.cfg.Scopes, ","))
	q.Set("redirect_uri", s.cfg.RedirectURI)
	q.Set("state", nonce)

	u := url.URL{
		Scheme:   "https",
		Host:     domain.String(),
		Path:     authorizePath,
		RawQuery: q.Encode(),
	}
	return u.String()
}
