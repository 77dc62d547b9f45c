// Package exchange is the thin client that trades an authorization code for
// an access credential at the platform's token endpoint. It owns no handshake
// state; the coordinator maps its failures to a terminal exchange error.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tenant "shoplink/internal/tenant/models"
	dErrors "shoplink/pkg/domain-errors"
)

const tokenPath = "/admin/oauth/access_token"

// Result is the credential material returned by the platform.
type Result struct {
	AccessToken string
	Scopes      []string
	// ExpiresAt is nil for durable offline tokens.
	ExpiresAt *time.Time
}

// Client exchanges authorization codes against a shop's token endpoint.
type Client struct {
	httpClient *http.Client
	clientID   string
	secret     string
	baseURL    string // overrides the per-shop URL, for tests
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL routes all exchanges to a fixed endpoint instead of the
// per-shop domain. Used by tests against an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// New constructs a Client. The timeout bounds each exchange call; network
// and timeout failures surface as transport errors for the coordinator to
// classify.
func New(clientID, secret string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		clientID:   clientID,
		secret:     secret,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// Exchange posts the authorization code to the shop's token endpoint.
func (c *Client) Exchange(ctx context.Context, domain tenant.ShopDomain, code string) (*Result, error) {
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "authorization code cannot be empty")
	}

	endpoint := c.baseURL
	if endpoint == "" {
		endpoint = "https://" + domain.String()
	}
	endpoint += tokenPath

	body, err := json.Marshal(tokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.secret,
		Code:         code,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode token request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build token request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned empty access token")
	}

	result := &Result{
		AccessToken: tr.AccessToken,
		Scopes:      splitScopes(tr.Scope),
	}
	if tr.ExpiresIn > 0 {
		expires := time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
		result.ExpiresAt = &expires
	}
	return result, nil
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	scopes := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			scopes = append(scopes, trimmed)
		}
	}
	return scopes
}
