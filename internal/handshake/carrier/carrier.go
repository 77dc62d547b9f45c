// Package carrier implements the fallback nonce carrier: a signed, time-boxed
// token held by the merchant's browser for the duration of a handshake. It is
// only consulted when the nonce store cannot answer (process restart, requests
// landing on a different instance). It trades a weaker security property
// (client-held, replayable within its validity window if intercepted) for
// availability; the nonce store remains authoritative whenever it has state.
package carrier

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "shoplink/pkg/domain-errors"
)

// ErrInvalidToken covers malformed, unsigned, tampered, and expired carrier
// tokens alike.
var ErrInvalidToken = dErrors.New(dErrors.CodeUnauthorized, "invalid carrier token")

type carrierClaims struct {
	Nonce string `json:"nce"`
	jwt.RegisteredClaims
}

// Carrier issues and reads HS256-signed nonce tokens. The TTL is fixed at
// construction and must equal the nonce store's TTL so the two layers cannot
// disagree on expiry; the coordinator derives both from the same config value.
type Carrier struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// Option configures the Carrier.
type Option func(*Carrier)

// WithTimeFunc overrides the clock, for tests.
func WithTimeFunc(now func() time.Time) Option {
	return func(c *Carrier) {
		if now != nil {
			c.now = now
		}
	}
}

// New constructs a Carrier with the given signing key and handshake TTL.
func New(signingKey string, ttl time.Duration, opts ...Option) (*Carrier, error) {
	if signingKey == "" {
		return nil, dErrors.New(dErrors.CodeInternal, "carrier signing key is required")
	}
	if ttl <= 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "carrier ttl must be positive")
	}
	c := &Carrier{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// TTL returns the validity window tokens are issued with.
func (c *Carrier) TTL() time.Duration {
	return c.ttl
}

// Issue produces an opaque token embedding the nonce, valid for the carrier's
// TTL. The nonce is tamper-evident but not confidential; anyone holding the
// token is treated as the browser context that started the handshake.
func (c *Carrier) Issue(nonce string) (string, error) {
	if nonce == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "nonce cannot be empty")
	}
	now := c.now()
	claims := carrierClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign carrier token")
	}
	return signed, nil
}

// Read returns the embedded nonce, or ErrInvalidToken if the token is
// malformed, carries a bad signature, or has expired.
func (c *Carrier) Read(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	claims := &carrierClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.signingKey, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.Nonce == "" {
		return "", ErrInvalidToken
	}
	return claims.Nonce, nil
}
