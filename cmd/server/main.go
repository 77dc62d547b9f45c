package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	bindingstore "shoplink/internal/binding"
	"shoplink/internal/device"
	"shoplink/internal/exchange"
	"shoplink/internal/handshake/carrier"
	handshakemetrics "shoplink/internal/handshake/metrics"
	"shoplink/internal/handshake/service"
	nonce "shoplink/internal/handshake/store/nonce"
	"shoplink/internal/handshake/workers/cleanup"
	"shoplink/internal/platform/config"
	"shoplink/internal/platform/httpserver"
	"shoplink/internal/platform/logger"
	"shoplink/internal/provisioning"
	sessionmetrics "shoplink/internal/session/metrics"
	"shoplink/internal/session/resolver"
	sessionstore "shoplink/internal/session/store"
	tenantstore "shoplink/internal/tenant/store"
	httptransport "shoplink/internal/transport/http"
	"shoplink/internal/webhook"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing shoplink",
		"addr", cfg.Addr,
		"handshake_ttl", cfg.HandshakeTTL.String(),
		"sweep_interval", cfg.SweepInterval.String(),
	)

	nonces := nonce.NewInMemoryNonceStore()
	creds := sessionstore.NewInMemorySessionStore()
	tenants := tenantstore.NewInMemoryTenantStore()
	bindings := bindingstore.NewInMemoryBindingStore()

	handshakeMx := handshakemetrics.New()
	sessionMx := sessionmetrics.New()

	fallback, err := carrier.New(cfg.CarrierSigningKey, cfg.HandshakeTTL)
	if err != nil {
		log.Error("carrier init failed", "error", err)
		os.Exit(1)
	}

	exchanger := exchange.New(cfg.PlatformClientID, cfg.PlatformClientSecret, cfg.ExchangeTimeout)

	handshake, err := service.New(
		service.Config{
			ClientID:        cfg.PlatformClientID,
			Scopes:          []string{"read_products", "read_orders", "read_customers"},
			RedirectURI:     cfg.RedirectURI,
			HandshakeTTL:    cfg.HandshakeTTL,
			ExchangeTimeout: cfg.ExchangeTimeout,
		},
		nonces, fallback, exchanger, creds, tenants,
		service.WithLogger(log),
		service.WithMetrics(handshakeMx),
		service.WithDeviceNamer(device.NewService()),
	)
	if err != nil {
		log.Error("handshake service init failed", "error", err)
		os.Exit(1)
	}

	res, err := resolver.New(bindings, creds,
		resolver.WithLogger(log),
		resolver.WithMetrics(sessionMx),
	)
	if err != nil {
		log.Error("resolver init failed", "error", err)
		os.Exit(1)
	}

	prov, err := provisioning.New(bindings, tenants, provisioning.WithLogger(log))
	if err != nil {
		log.Error("provisioning init failed", "error", err)
		os.Exit(1)
	}

	hooks, err := webhook.New(creds, tenants, bindings,
		webhook.WithLogger(log),
		webhook.WithMetrics(sessionMx),
	)
	if err != nil {
		log.Error("webhook service init failed", "error", err)
		os.Exit(1)
	}

	sweeper, err := cleanup.New(nonces, creds,
		cleanup.WithCleanupInterval(cfg.SweepInterval),
		cleanup.WithCleanupLogger(log),
		cleanup.WithCleanupMetrics(handshakeMx, sessionMx),
	)
	if err != nil {
		log.Error("cleanup worker init failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(
		httptransport.Config{
			AppHomeURL:          cfg.AppHomeURL,
			WebhookSecret:       cfg.WebhookSecret,
			AssistantAPIKeyHash: cfg.AssistantAPIKeyHash,
			SecureCookies:       true,
		},
		handshake, res, prov, hooks, log,
	)
	router := httptransport.NewRouter(handler, log)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := sweeper.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
