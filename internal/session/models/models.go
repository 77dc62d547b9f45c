// Package models defines the credential records shoplink holds on behalf of
// a tenant once a handshake has completed.
package models

import (
	"time"

	"github.com/google/uuid"

	tenant "shoplink/internal/tenant/models"
)

// Kind distinguishes how a credential may be used.
type Kind string

const (
	// KindBackground is a durable server-to-server credential. A tenant holds
	// at most one, and it typically never expires.
	KindBackground Kind = "background"
	// KindInteractive is bound to a single end-user session and expires on
	// its own schedule. A tenant may hold any number of them.
	KindInteractive Kind = "interactive"
)

func (k Kind) Valid() bool {
	return k == KindBackground || k == KindInteractive
}

// Credential is an access credential issued by the external platform.
type Credential struct {
	ID         uuid.UUID
	ShopDomain tenant.ShopDomain
	Kind       Kind
	Token      string
	Scopes     []string

	// DeviceName is a human label for the browser that completed an
	// interactive grant; empty for background credentials.
	DeviceName string

	// ExpiresAt is nil for non-expiring (background) credentials.
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the credential has an expiry in the past.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
