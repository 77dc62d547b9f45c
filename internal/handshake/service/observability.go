package service

import (
	"context"

	sessionmodels "shoplink/internal/session/models"
	tenantmodels "shoplink/internal/tenant/models"
)

// Observability helpers for logging and metrics. Replay suspicion is the one
// event logged at Warn; everything else on the failure path stays at Info
// because handshake failures are routine (abandoned installs, stale tabs).

func (s *Service) logInitiated(ctx context.Context, domain tenantmodels.ShopDomain) {
	if s.metrics != nil {
		s.metrics.HandshakesInitiated.Inc()
	}
	s.logger.InfoContext(ctx, "handshake initiated",
		"shop", domain.String(),
		"ttl", s.cfg.HandshakeTTL.String(),
	)
}

func (s *Service) logCompleted(ctx context.Context, domain tenantmodels.ShopDomain, credential *sessionmodels.Credential) {
	s.logger.InfoContext(ctx, "handshake completed",
		"shop", domain.String(),
		"credential_id", credential.ID.String(),
		"kind", string(credential.Kind),
		"scopes", credential.Scopes,
	)
}

func (s *Service) logReplaySuspected(ctx context.Context, domain tenantmodels.ShopDomain) {
	s.logger.WarnContext(ctx, "state mismatch, possible replay attack",
		"shop", domain.String(),
	)
}

func (s *Service) logExchangeFailed(ctx context.Context, domain tenantmodels.ShopDomain, err error) {
	s.logger.ErrorContext(ctx, "authorization code exchange failed",
		"shop", domain.String(),
		"error", err,
	)
}

func (s *Service) failCompletion(ctx context.Context, reason string, err error, shop string) error {
	if s.metrics != nil {
		s.metrics.HandshakeFailures.WithLabelValues(reason).Inc()
	}
	s.logger.InfoContext(ctx, "handshake completion rejected",
		"reason", reason,
		"shop", shop,
	)
	return err
}
