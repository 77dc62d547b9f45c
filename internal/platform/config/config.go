package config

import (
	"os"
	"time"
)

// Server captures process level configuration for shoplink.
type Server struct {
	Addr string

	// Platform app credentials for the authorization-code exchange.
	PlatformClientID     string
	PlatformClientSecret string

	// Signing key for the fallback carrier token (HS256).
	CarrierSigningKey string

	// HandshakeTTL bounds a pending handshake from initiation to completion.
	// The carrier token TTL is derived from this value and is never
	// configured separately, so the two layers cannot disagree on expiry.
	HandshakeTTL time.Duration

	// SweepInterval drives the background expiry sweep, independent of
	// request traffic.
	SweepInterval time.Duration

	// ExchangeTimeout bounds the network call to the platform token endpoint.
	ExchangeTimeout time.Duration

	// RedirectURI is the callback the platform sends the merchant back to.
	// Must match the URI registered with the platform app.
	RedirectURI string

	// AppHomeURL is where the merchant lands after a successful handshake.
	AppHomeURL string

	// WebhookSecret signs inbound platform webhooks (HMAC-SHA256).
	WebhookSecret string

	// AssistantAPIKeyHash is the bcrypt hash of the API key presented by the
	// voice-assistant backend on resolution calls.
	AssistantAPIKeyHash string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:                 getEnv("SHOPLINK_ADDR", ":8080"),
		PlatformClientID:     os.Getenv("PLATFORM_CLIENT_ID"),
		PlatformClientSecret: os.Getenv("PLATFORM_CLIENT_SECRET"),
		CarrierSigningKey:    os.Getenv("CARRIER_SIGNING_KEY"),
		HandshakeTTL:         getDuration("HANDSHAKE_TTL", 10*time.Minute),
		SweepInterval:        getDuration("SWEEP_INTERVAL", time.Minute),
		ExchangeTimeout:      getDuration("EXCHANGE_TIMEOUT", 10*time.Second),
		RedirectURI:          getEnv("AUTH_REDIRECT_URI", "http://localhost:8080/auth/callback"),
		AppHomeURL:           getEnv("APP_HOME_URL", "/"),
		WebhookSecret:        os.Getenv("WEBHOOK_SECRET"),
		AssistantAPIKeyHash:  os.Getenv("ASSISTANT_API_KEY_HASH"),
	}
	if cfg.CarrierSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.CarrierSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
