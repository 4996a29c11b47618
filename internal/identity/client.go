package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopwave/shopwave-backend/pkg/config"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
)

// Identity is the user record returned by the external provider.
type Identity struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// Client talks to the external identity provider. The provider is a black
// box: ShopWave only sees the redirect URL and the code exchange.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a provider client from config.
func NewClient(cfg config.IdentityConfig) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("identity api url required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("identity api key required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetRedirectURL fetches the provider's OAuth redirect URL.
func (c *Client) GetRedirectURL(ctx context.Context) (string, error) {
	var payload struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/oauth/redirect_url", nil, &payload); err != nil {
		return "", err
	}
	if payload.RedirectURL == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "identity provider returned no redirect url")
	}
	return payload.RedirectURL, nil
}

// ExchangeCode trades an authorization code for the provider's user record.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	body := map[string]string{"code": code}
	var payload struct {
		User Identity `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/sessions/exchange", body, &payload); err != nil {
		return nil, err
	}
	if payload.User.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "identity provider returned no user")
	}
	return &payload.User, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode provider request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build provider request")
	}
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call identity provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("identity provider responded %d for %s %s", resp.StatusCode, method, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode provider response")
	}
	return nil
}
