package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shoplink/internal/exchange"
	"shoplink/internal/handshake/models"
	sessionmodels "shoplink/internal/session/models"
	tenantmodels "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

func (s *ServiceSuite) TestComplete() {
	domain := tenantmodels.ShopDomain("acme.myshopify.com")
	notFound := dErrors.New(dErrors.CodeNotFound, "no pending handshake")

	params := func() models.CompleteParams {
		return models.CompleteParams{
			Shop:          "acme.myshopify.com",
			ReturnedState: "nonce-1",
			Code:          "auth-code",
			CarrierToken:  "carrier-token",
		}
	}

	s.T().Run("happy path stores background credential", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("nonce-1", nil)
		s.mockExchanger.EXPECT().Exchange(gomock.Any(), domain, "auth-code").Return(&exchange.Result{
			AccessToken: "shpat_abc",
			Scopes:      []string{"read_products"},
		}, nil)

		var stored *sessionmodels.Credential
		s.mockCreds.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, c *sessionmodels.Credential) error {
				stored = c
				return nil
			})

		credential, err := s.service.Complete(context.Background(), params())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored, credential)
		assert.Equal(t, domain, credential.ShopDomain)
		assert.Equal(t, sessionmodels.KindBackground, credential.Kind)
		assert.Equal(t, "shpat_abc", credential.Token)
		assert.Equal(t, []string{"read_products"}, credential.Scopes)
		assert.Nil(t, credential.ExpiresAt)
	})

	s.T().Run("at most once: second completion with same callback fails", func(t *testing.T) {
		gomock.InOrder(
			s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("nonce-1", nil),
			s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("", notFound),
		)
		s.mockExchanger.EXPECT().Exchange(gomock.Any(), domain, "auth-code").Return(&exchange.Result{AccessToken: "shpat_abc"}, nil)
		s.mockCreds.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
		// The replayed carrier token still holds the consumed nonce, but the
		// conflation rule maps the miss to handshake_not_found rather than
		// admitting the nonce ever existed. Here the carrier read also fails
		// because the mock rejects it outright.
		s.mockFallback.EXPECT().Read("carrier-token").Return("", errors.New("no token"))

		_, err := s.service.Complete(context.Background(), params())
		require.NoError(t, err)

		_, err = s.service.Complete(context.Background(), params())
		assert.ErrorIs(t, err, ErrHandshakeNotFound)
	})

	s.T().Run("primary miss falls back to carrier token", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("", notFound)
		s.mockFallback.EXPECT().Read("carrier-token").Return("nonce-1", nil)
		s.mockExchanger.EXPECT().Exchange(gomock.Any(), domain, "auth-code").Return(&exchange.Result{AccessToken: "shpat_abc"}, nil)
		s.mockCreds.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

		credential, err := s.service.Complete(context.Background(), params())
		require.NoError(t, err)
		assert.Equal(t, "shpat_abc", credential.Token)
	})

	s.T().Run("both layers missing yields handshake not found", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("", notFound)
		s.mockFallback.EXPECT().Read("carrier-token").Return("", errors.New("token expired"))

		_, err := s.service.Complete(context.Background(), params())
		assert.ErrorIs(t, err, ErrHandshakeNotFound)
	})

	s.T().Run("state mismatch is terminal and consumes the nonce", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("nonce-other", nil)

		_, err := s.service.Complete(context.Background(), params())
		assert.ErrorIs(t, err, ErrStateMismatch)
	})

	s.T().Run("cross-tenant state is rejected as mismatch", func(t *testing.T) {
		other := tenantmodels.ShopDomain("globex.myshopify.com")
		// Nonce issued for globex, callback claims globex but carries acme's
		// state value.
		s.mockNonces.EXPECT().Take(gomock.Any(), other, s.now).Return("nonce-globex", nil)

		p := params()
		p.Shop = "globex.myshopify.com"
		_, err := s.service.Complete(context.Background(), p)
		assert.ErrorIs(t, err, ErrStateMismatch)
	})

	s.T().Run("exchange failure maps to exchange_failed and stores nothing", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("nonce-1", nil)
		s.mockExchanger.EXPECT().Exchange(gomock.Any(), domain, "auth-code").Return(nil, errors.New("401 from platform"))

		_, err := s.service.Complete(context.Background(), params())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeExchangeFailed))
		assert.ErrorIs(t, err, ErrExchangeFailed)
	})

	s.T().Run("exchange honors the configured timeout", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("nonce-1", nil)
		s.mockExchanger.EXPECT().Exchange(gomock.Any(), domain, "auth-code").DoAndReturn(
			func(ctx context.Context, d tenantmodels.ShopDomain, code string) (*exchange.Result, error) {
				deadline, ok := ctx.Deadline()
				assert.True(t, ok, "exchange context must carry a deadline")
				assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
				return &exchange.Result{AccessToken: "shpat_abc"}, nil
			})
		s.mockCreds.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.Complete(context.Background(), params())
		require.NoError(t, err)
	})

	s.T().Run("invalid shop rejected before nonce lookup", func(t *testing.T) {
		p := params()
		p.Shop = "///"
		_, err := s.service.Complete(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidTenant)
	})

	s.T().Run("store failure counts as internal, not a missing handshake", func(t *testing.T) {
		var logs bytes.Buffer
		svc, err := New(
			s.service.cfg,
			s.mockNonces,
			s.mockFallback,
			s.mockExchanger,
			s.mockCreds,
			s.mockTenants,
			WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
			WithTimeFunc(func() time.Time { return s.now }),
		)
		require.NoError(t, err)

		// A broken primary store must not be filed under handshake_not_found,
		// and must not trigger the carrier fallback.
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("", errors.New("shard backend down"))

		_, err = svc.Complete(context.Background(), params())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
		assert.Contains(t, logs.String(), `"reason":"internal_error"`)
		assert.NotContains(t, logs.String(), "handshake_not_found")
	})

	s.T().Run("credential write failure propagates as internal", func(t *testing.T) {
		s.mockNonces.EXPECT().Take(gomock.Any(), domain, s.now).Return("nonce-1", nil)
		s.mockExchanger.EXPECT().Exchange(gomock.Any(), domain, "auth-code").Return(&exchange.Result{AccessToken: "shpat_abc"}, nil)
		s.mockCreds.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("store down"))

		_, err := s.service.Complete(context.Background(), params())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestCompleteErrorIsTest() {
	// errors.Is must match by code so transport can map without string
	// comparison.
	assert.True(s.T(), errors.Is(
		dErrors.New(dErrors.CodeHandshakeNotFound, "different message"),
		ErrHandshakeNotFound,
	))
}
