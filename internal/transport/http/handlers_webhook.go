package httptransport

import (
	"io"
	"net/http"

	jsonwriter "shoplink/internal/transport/http/json"
	"shoplink/internal/transport/http/shared"
	"shoplink/internal/webhook"
	dErrors "shoplink/pkg/domain-errors"
)

// Platform webhook headers: the HMAC digest over the raw body and the shop
// the event concerns.
const (
	signatureHeader = "X-Shopify-Hmac-Sha256"
	shopHeader      = "X-Shopify-Shop-Domain"
)

const maxWebhookBody = 1 << 20

func (h *Handler) handleUninstalled(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unreadable body"))
		return
	}

	if err := webhook.VerifySignature(h.cfg.WebhookSecret, body, r.Header.Get(signatureHeader)); err != nil {
		h.logger.WarnContext(r.Context(), "webhook signature rejected",
			"shop", r.Header.Get(shopHeader),
		)
		shared.WriteError(w, err)
		return
	}

	if err := h.webhooks.HandleUninstalled(r.Context(), r.Header.Get(shopHeader)); err != nil {
		shared.WriteError(w, err)
		return
	}

	jsonwriter.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
