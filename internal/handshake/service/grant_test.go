package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shoplink/internal/handshake/models"
	"shoplink/internal/handshake/service/mocks"
	sessionmodels "shoplink/internal/session/models"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

func (s *ServiceSuite) TestGrantInteractive() {
	domain := tenantmodels.ShopDomain("acme.myshopify.com")
	expires := s.now.Add(24 * time.Hour)

	s.T().Run("records an interactive credential with device label", func(t *testing.T) {
		namer := mocks.NewMockDeviceNamer(s.ctrl)
		namer.EXPECT().DisplayName("Mozilla/5.0").Return("Chrome on Mac OS X")
		WithDeviceNamer(namer)(s.service)
		t.Cleanup(func() { WithDeviceNamer(nil)(s.service) })

		s.mockTenants.EXPECT().FindByDomain(gomock.Any(), domain).Return(s.activeTenant(domain), nil)

		var stored *sessionmodels.Credential
		s.mockCreds.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, c *sessionmodels.Credential) error {
				stored = c
				return nil
			})

		credential, err := s.service.GrantInteractive(context.Background(), models.InteractiveGrant{
			Shop:      "acme",
			Token:     "sess_xyz",
			Scopes:    []string{"read_orders"},
			ExpiresAt: &expires,
			UserAgent: "Mozilla/5.0",
		})
		require.NoError(t, err)
		assert.Equal(t, stored, credential)
		assert.Equal(t, sessionmodels.KindInteractive, credential.Kind)
		assert.Equal(t, "Chrome on Mac OS X", credential.DeviceName)
		require.NotNil(t, credential.ExpiresAt)
		assert.Equal(t, expires, *credential.ExpiresAt)
	})

	s.T().Run("empty token rejected", func(t *testing.T) {
		_, err := s.service.GrantInteractive(context.Background(), models.InteractiveGrant{
			Shop:  "acme",
			Token: "",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("invalid shop rejected", func(t *testing.T) {
		_, err := s.service.GrantInteractive(context.Background(), models.InteractiveGrant{
			Shop:  "bad shop",
			Token: "sess_xyz",
		})
		assert.ErrorIs(t, err, ErrInvalidTenant)
	})

	s.T().Run("unregistered shop leaves no credential behind", func(t *testing.T) {
		ghost := tenantmodels.ShopDomain("ghost.myshopify.com")
		s.mockTenants.EXPECT().FindByDomain(gomock.Any(), ghost).Return(nil, dErrors.New(dErrors.CodeNotFound, "tenant not found"))

		_, err := s.service.GrantInteractive(context.Background(), models.InteractiveGrant{
			Shop:  "ghost",
			Token: "sess_xyz",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.T().Run("inactive shop rejected", func(t *testing.T) {
		inactive := s.activeTenant(domain)
		inactive.Status = tenantmodels.TenantStatusInactive
		s.mockTenants.EXPECT().FindByDomain(gomock.Any(), domain).Return(inactive, nil)

		_, err := s.service.GrantInteractive(context.Background(), models.InteractiveGrant{
			Shop:  "acme",
			Token: "sess_xyz",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("registry lookup failure is internal", func(t *testing.T) {
		s.mockTenants.EXPECT().FindByDomain(gomock.Any(), domain).Return(nil, assert.AnError)

		_, err := s.service.GrantInteractive(context.Background(), models.InteractiveGrant{
			Shop:  "acme",
			Token: "sess_xyz",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
