// Package cleanup reclaims expired handshake and credential state in the
// background. Expiry is enforced at read time by the stores themselves; the
// sweep only bounds memory, so a failed run is logged and retried on the
// next tick, never surfaced to callers.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shoplink/internal/handshake/metrics"
	sessionmetrics "shoplink/internal/session/metrics"
)

// NonceStore exposes cleanup for expired pending handshakes.
type NonceStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// CredentialStore exposes cleanup for expired interactive credentials.
type CredentialStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// CleanupResult summarizes the deletions performed by a cleanup run.
type CleanupResult struct {
	DeletedNonces      int
	DeletedCredentials int
}

// CleanupService periodically removes expired handshake artifacts.
type CleanupService struct {
	nonceStore      NonceStore
	credentialStore CredentialStore
	interval        time.Duration
	logger          *slog.Logger
	handshakeMx     *metrics.Metrics
	sessionMx       *sessionmetrics.Metrics
	now             func() time.Time
}

// CleanupOption configures CleanupService.
type CleanupOption func(*CleanupService)

// WithCleanupInterval overrides the cleanup interval when greater than zero.
func WithCleanupInterval(interval time.Duration) CleanupOption {
	return func(s *CleanupService) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithCleanupLogger overrides the logger used for cleanup errors.
func WithCleanupLogger(logger *slog.Logger) CleanupOption {
	return func(s *CleanupService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCleanupMetrics attaches sweep counters.
func WithCleanupMetrics(handshakeMx *metrics.Metrics, sessionMx *sessionmetrics.Metrics) CleanupOption {
	return func(s *CleanupService) {
		s.handshakeMx = handshakeMx
		s.sessionMx = sessionMx
	}
}

// WithCleanupTimeFunc overrides the clock, for tests.
func WithCleanupTimeFunc(now func() time.Time) CleanupOption {
	return func(s *CleanupService) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a CleanupService with required stores and options applied.
func New(nonceStore NonceStore, credentialStore CredentialStore, opts ...CleanupOption) (*CleanupService, error) {
	if nonceStore == nil || credentialStore == nil {
		return nil, fmt.Errorf("nonceStore and credentialStore are required")
	}
	svc := &CleanupService{
		nonceStore:      nonceStore,
		credentialStore: credentialStore,
		interval:        time.Minute,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Start runs cleanup periodically until ctx is cancelled.
func (s *CleanupService) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "handshake cleanup failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single cleanup operation across both stores.
// Errors are aggregated so a failure in one store does not stop the other's
// sweep.
func (s *CleanupService) RunOnce(ctx context.Context) (CleanupResult, error) {
	now := s.now()
	var res CleanupResult
	var errs []error

	deletedNonces, err := s.nonceStore.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete expired handshakes: %w", err))
	} else {
		res.DeletedNonces = deletedNonces
		if s.handshakeMx != nil {
			s.handshakeMx.NoncesSwept.Add(float64(deletedNonces))
		}
	}

	deletedCredentials, err := s.credentialStore.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete expired credentials: %w", err))
	} else {
		res.DeletedCredentials = deletedCredentials
		if s.sessionMx != nil {
			s.sessionMx.ExpiredCredsSwept.Add(float64(deletedCredentials))
		}
	}

	if res.DeletedNonces > 0 || res.DeletedCredentials > 0 {
		s.logger.InfoContext(ctx, "expired handshake state reclaimed",
			"nonces", res.DeletedNonces,
			"credentials", res.DeletedCredentials,
		)
	}

	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}
