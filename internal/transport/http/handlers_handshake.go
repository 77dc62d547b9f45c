package httptransport

import (
	"net/http"

	"shoplink/internal/handshake/models"
	"shoplink/internal/transport/http/json"
	"shoplink/internal/transport/http/shared"
	dErrors "shoplink/pkg/domain-errors"
)

// carrierCookie holds the fallback carrier token between initiation and the
// platform's callback. HttpOnly keeps it out of page scripts; SameSite=Lax
// still sends it on the top-level redirect back from the platform.
const carrierCookie = "__shoplink_state"

func (h *Handler) handleInitiate(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")

	result, err := h.handshake.Initiate(r.Context(), shop)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     carrierCookie,
		Value:    result.CarrierToken,
		Path:     "/auth",
		MaxAge:   int(result.CarrierTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, result.AuthorizeURL, http.StatusFound)
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := models.CompleteParams{
		Shop:          q.Get("shop"),
		ReturnedState: q.Get("state"),
		Code:          q.Get("code"),
		UserAgent:     r.UserAgent(),
	}
	if c, err := r.Cookie(carrierCookie); err == nil {
		params.CarrierToken = c.Value
	}

	// The cookie is single-purpose: whatever the outcome, this handshake is
	// finished and the token must not linger for a replayed callback.
	h.clearCarrierCookie(w)

	if _, err := h.handshake.Complete(r.Context(), params); err != nil {
		h.writeHandshakeFailure(w, err)
		return
	}

	http.Redirect(w, r, h.cfg.AppHomeURL, http.StatusFound)
}

func (h *Handler) clearCarrierCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     carrierCookie,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeHandshakeFailure renders the uniform failure envelope for the
// completion endpoint. Every handshake failure is terminal, so the envelope
// always tells the merchant to start over.
func (h *Handler) writeHandshakeFailure(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	json.WriteJSON(w, shared.DomainCodeToHTTPStatus(code), map[string]string{
		"error":       string(code),
		"instruction": "restart the installation from /auth/initiate",
	})
}
