// Package models carries the request and result types of the handshake flow.
package models

import (
	"time"

	tenant "shoplink/internal/tenant/models"
)

// InitiateResult is handed back to the transport layer after a handshake has
// been initiated: the redirect target for the merchant's browser and the
// carrier token to set as a cookie.
type InitiateResult struct {
	ShopDomain   tenant.ShopDomain
	AuthorizeURL string
	CarrierToken string
	CarrierTTL   time.Duration
}

// CompleteParams are the inputs of the completion leg, straight off the
// platform's callback redirect plus the carrier cookie if the browser still
// has it.
type CompleteParams struct {
	Shop          string
	ReturnedState string
	Code          string
	CarrierToken  string
	// UserAgent of the completing browser; recorded on the credential as a
	// human-readable device label.
	UserAgent string
}

// InteractiveGrant records a platform-issued end-user session token for a
// tenant that already completed its handshake.
type InteractiveGrant struct {
	Shop      string
	Token     string
	Scopes    []string
	ExpiresAt *time.Time
	UserAgent string
}
