package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

func (s *ServiceSuite) TestInitiate() {
	domain := tenantmodels.ShopDomain("acme.myshopify.com")

	s.T().Run("happy path returns authorize URL and carrier token", func(t *testing.T) {
		var storedNonce string
		s.mockTenants.EXPECT().Ensure(gomock.Any(), domain, s.now).Return(s.activeTenant(domain), nil)
		s.mockNonces.EXPECT().Put(gomock.Any(), domain, gomock.Any(), s.now, testTTL).DoAndReturn(
			func(ctx context.Context, d tenantmodels.ShopDomain, nonce string, now time.Time, ttl time.Duration) error {
				storedNonce = nonce
				return nil
			})
		s.mockFallback.EXPECT().Issue(gomock.Any()).DoAndReturn(
			func(nonce string) (string, error) {
				assert.Equal(t, storedNonce, nonce, "carrier must hold the same nonce as the primary store")
				return "carrier-token", nil
			})

		result, err := s.service.Initiate(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, domain, result.ShopDomain)
		assert.Equal(t, "carrier-token", result.CarrierToken)
		assert.Equal(t, testTTL, result.CarrierTTL)
		assert.NotEmpty(t, storedNonce)

		u, err := url.Parse(result.AuthorizeURL)
		require.NoError(t, err)
		assert.Equal(t, "https", u.Scheme)
		assert.Equal(t, "acme.myshopify.com", u.Host)
		assert.Equal(t, "/admin/oauth/authorize", u.Path)
		q := u.Query()
		assert.Equal(t, "app-client-id", q.Get("client_id"))
		assert.Equal(t, "read_products,read_orders", q.Get("scope"))
		assert.Equal(t, "https://app.example.com/auth/callback", q.Get("redirect_uri"))
		assert.Equal(t, storedNonce, q.Get("state"))
	})

	s.T().Run("each initiation mints a distinct nonce", func(t *testing.T) {
		var nonces []string
		s.mockTenants.EXPECT().Ensure(gomock.Any(), domain, s.now).Return(s.activeTenant(domain), nil).Times(2)
		s.mockNonces.EXPECT().Put(gomock.Any(), domain, gomock.Any(), s.now, testTTL).DoAndReturn(
			func(ctx context.Context, d tenantmodels.ShopDomain, nonce string, now time.Time, ttl time.Duration) error {
				nonces = append(nonces, nonce)
				return nil
			}).Times(2)
		s.mockFallback.EXPECT().Issue(gomock.Any()).Return("carrier-token", nil).Times(2)

		_, err := s.service.Initiate(context.Background(), "acme")
		require.NoError(t, err)
		_, err = s.service.Initiate(context.Background(), "acme")
		require.NoError(t, err)

		require.Len(t, nonces, 2)
		assert.NotEqual(t, nonces[0], nonces[1])
	})

	s.T().Run("invalid shop rejected before any state change", func(t *testing.T) {
		_, err := s.service.Initiate(context.Background(), "not a shop!")
		assert.ErrorIs(t, err, ErrInvalidTenant)
	})

	s.T().Run("tenant registration failure propagates as internal", func(t *testing.T) {
		s.mockTenants.EXPECT().Ensure(gomock.Any(), domain, s.now).Return(nil, errors.New("boom"))

		_, err := s.service.Initiate(context.Background(), "acme")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.T().Run("carrier issue failure propagates", func(t *testing.T) {
		s.mockTenants.EXPECT().Ensure(gomock.Any(), domain, s.now).Return(s.activeTenant(domain), nil)
		s.mockNonces.EXPECT().Put(gomock.Any(), domain, gomock.Any(), s.now, testTTL).Return(nil)
		s.mockFallback.EXPECT().Issue(gomock.Any()).Return("", errors.New("signing key unavailable"))

		_, err := s.service.Initiate(context.Background(), "acme")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
