package service

import (
	"context"

	"github.com/google/uuid"

	"shoplink/internal/handshake/models"
	sessionmodels "shoplink/internal/session/models"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

// GrantInteractive records an end-user session token for a tenant. Unlike
// Complete it performs no nonce validation: the token was already issued by
// the platform to an authenticated end-user session, and interactive
// credentials expire on their own cycle rather than being replaced.
func (s *Service) GrantInteractive(ctx context.Context, grant models.InteractiveGrant) (*sessionmodels.Credential, error) {
	domain, err := tenantmodels.ParseShopDomain(grant.Shop)
	if err != nil {
		return nil, ErrInvalidTenant
	}
	if grant.Token == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "token cannot be empty")
	}

	// A credential must belong to an installed tenant. Interactive grants
	// arrive out of band, so the registry check happens here rather than
	// implicitly through the handshake flow.
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

	now := s.now()
	credential := &sessionmodels.Credential{
		ID:         uuid.New(),
		ShopDomain: domain,
		Kind:       sessionmodels.KindInteractive,
		Token:      grant.Token,
		Scopes:     grant.Scopes,
		DeviceName: s.deviceName(grant.UserAgent),
		ExpiresAt:  grant.ExpiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.creds.Put(ctx, credential); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist interactive credential")
	}

	s.logger.InfoContext(ctx, "interactive credential recorded",
		"shop", domain.String(),
		"credential_id", credential.ID.String(),
		"device", credential.DeviceName,
	)
	return credential, nil
}
