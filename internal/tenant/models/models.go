// Package models defines the tenant domain: a registered storefront account
// identified by its shop domain.
package models

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "shoplink/pkg/domain-errors"
)

const domainSuffix = ".myshopify.com"

var shopNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ShopDomain is the case-normalized, globally unique tenant identifier.
// Use ParseShopDomain at trust boundaries; the zero value is never valid.
type ShopDomain string

func (d ShopDomain) String() string { return string(d) }

// ParseShopDomain validates and normalizes a raw shop identifier.
// Accepts "acme", "acme.myshopify.com", or a full URL, and always yields the
// lowercased "<name>.myshopify.com" form.
func ParseShopDomain(raw string) (ShopDomain, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if strings.Contains(trimmed, "://") {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", dErrors.New(dErrors.CodeInvalidTenant, "invalid shop domain")
		}
		trimmed = strings.TrimSpace(strings.ToLower(parsed.Hostname()))
	}
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" || strings.Contains(trimmed, "/") {
		return "", dErrors.New(dErrors.CodeInvalidTenant, "invalid shop domain")
	}
	if !strings.Contains(trimmed, ".") {
		trimmed += domainSuffix
	}
	if !strings.HasSuffix(trimmed, domainSuffix) {
		return "", dErrors.New(dErrors.CodeInvalidTenant, "shop domain must end with "+domainSuffix)
	}
	name := strings.TrimSuffix(trimmed, domainSuffix)
	if !shopNamePattern.MatchString(name) {
		return "", dErrors.New(dErrors.CodeInvalidTenant, "invalid shop domain")
	}
	return ShopDomain(trimmed), nil
}

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// Tenant is a registered storefront account. Tenants are created on first
// handshake initiation and are only ever deactivated, never deleted.
type Tenant struct {
	ID         uuid.UUID
	ShopDomain ShopDomain
	Status     TenantStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Deactivate marks the tenant inactive. Returns false if it already was.
func (t *Tenant) Deactivate(now time.Time) bool {
	if t.Status == TenantStatusInactive {
		return false
	}
	t.Status = TenantStatusInactive
	t.UpdatedAt = now
	return true
}
