package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"shoplink/internal/handshake/models"
	jsonwriter "shoplink/internal/transport/http/json"
	"shoplink/internal/transport/http/shared"
	dErrors "shoplink/pkg/domain-errors"
)

func (h *Handler) handleResolveCredential(w http.ResponseWriter, r *http.Request) {
	callerID := r.URL.Query().Get("caller_id")

	credential, err := h.resolver.Resolve(r.Context(), callerID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	response := map[string]any{
		"shop":   credential.ShopDomain.String(),
		"token":  credential.Token,
		"scopes": credential.Scopes,
	}
	if credential.ExpiresAt != nil {
		response["expires_at"] = credential.ExpiresAt.UTC().Format(time.RFC3339)
	}
	jsonwriter.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) handleBind(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CallerID string `json:"caller_id"`
		Shop     string `json:"shop"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	b, err := h.provisioning.Bind(r.Context(), req.CallerID, req.Shop)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	jsonwriter.WriteJSON(w, http.StatusCreated, map[string]string{
		"caller_id": b.CallerID,
		"shop":      b.ShopDomain.String(),
	})
}

func (h *Handler) handleGrantInteractive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Shop      string   `json:"shop"`
		Token     string   `json:"token"`
		Scopes    []string `json:"scopes"`
		ExpiresAt *string  `json:"expires_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	grant := models.InteractiveGrant{
		Shop:      req.Shop,
		Token:     req.Token,
		Scopes:    req.Scopes,
		UserAgent: r.UserAgent(),
	}
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "expires_at must be RFC 3339"))
			return
		}
		grant.ExpiresAt = &t
	}

	credential, err := h.handshake.GrantInteractive(r.Context(), grant)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	jsonwriter.WriteJSON(w, http.StatusCreated, map[string]string{
		"credential_id": credential.ID.String(),
		"shop":          credential.ShopDomain.String(),
	})
}
