// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shoplink/internal/binding"
	handshakemodels "shoplink/internal/handshake/models"
	"shoplink/internal/platform/middleware"
	sessionmodels "shoplink/internal/session/models"
	"shoplink/internal/transport/http/json"
)

// HandshakeService drives the initiate/complete flow.
type HandshakeService interface {
	Initiate(ctx context.Context, rawShop string) (*handshakemodels.InitiateResult, error)
	Complete(ctx context.Context, params handshakemodels.CompleteParams) (*sessionmodels.Credential, error)
	GrantInteractive(ctx context.Context, grant handshakemodels.InteractiveGrant) (*sessionmodels.Credential, error)
}

// ResolverService maps an external caller identifier to a usable credential.
type ResolverService interface {
	Resolve(ctx context.Context, callerID string) (*sessionmodels.Credential, error)
}

// ProvisioningService links assistant callers to tenants.
type ProvisioningService interface {
	Bind(ctx context.Context, callerID, rawShop string) (*binding.Binding, error)
}

// WebhookService processes platform lifecycle notifications.
type WebhookService interface {
	HandleUninstalled(ctx context.Context, rawShop string) error
}

// Config carries the transport-level settings.
type Config struct {
	// AppHomeURL is the success redirect target after a completed handshake.
	AppHomeURL string
	// WebhookSecret verifies inbound platform webhook signatures.
	WebhookSecret string
	// AssistantAPIKeyHash guards the assistant endpoints. Empty disables the
	// guard (local development).
	AssistantAPIKeyHash string
	// SecureCookies marks the carrier cookie Secure. Disabled only in tests
	// and local HTTP development.
	SecureCookies bool
}

// Handler holds the wired domain services behind the public endpoints.
type Handler struct {
	cfg          Config
	handshake    HandshakeService
	resolver     ResolverService
	provisioning ProvisioningService
	webhooks     WebhookService
	logger       *slog.Logger
}

func NewHandler(
	cfg Config,
	handshake HandshakeService,
	resolver ResolverService,
	provisioning ProvisioningService,
	webhooks WebhookService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		cfg:          cfg,
		handshake:    handshake,
		resolver:     resolver,
		provisioning: provisioning,
		webhooks:     webhooks,
		logger:       logger,
	}
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	// Merchant-facing handshake flow. These are browser redirects, not JSON
	// API calls; the carrier cookie rides along.
	r.Get("/auth/initiate", h.handleInitiate)
	r.Get("/auth/callback", h.handleCallback)

	// Assistant-facing endpoints, guarded by the shared API key.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(h.cfg.AssistantAPIKeyHash, logger))
		r.Get("/assistant/credential", h.handleResolveCredential)
		r.Post("/assistant/bindings", h.handleBind)
		r.Post("/sessions/interactive", h.handleGrantInteractive)
	})

	// Platform webhooks authenticate with an HMAC digest, not the API key.
	r.Post("/webhooks/app/uninstalled", h.handleUninstalled)

	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	json.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
