package opendota

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hkaanengin/opendota-mcp-server/internal/config"
	"github.com/hkaanengin/opendota-mcp-server/internal/ratelimit"
)

const bodyPreviewLimit = 200

// Client is the single shared gateway to the OpenDota API. Every outbound
// call passes through the rate limiter; the underlying http.Client is
// built lazily on first use and reused for the process lifetime.
type Client struct {
	baseURL string
	apiKey  string
	limiter *ratelimit.Limiter

	connectTimeout time.Duration
	readTimeout    time.Duration

	once sync.Once
	http *http.Client
}

func NewClient(cfg *config.Config, limiter *ratelimit.Limiter) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		limiter:        limiter,
		connectTimeout: cfg.ConnectTimeout,
		readTimeout:    cfg.ReadTimeout,
	}
}

// httpClient returns the shared pooled client, constructing it exactly once
// even under concurrent first callers.
func (c *Client) httpClient() *http.Client {
	c.once.Do(func() {
		dialer := &net.Dialer{Timeout: c.connectTimeout}
		c.http = &http.Client{
			Timeout: c.readTimeout,
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		}
		slog.Info("HTTP client initialized", "base_url", c.baseURL, "api_key", keyPrefix(c.apiKey))
	})
	return c.http
}

// Get fetches endpoint (e.g. "/heroes") with the given query parameters.
// List-valued filters arrive as repeated keys in params. Returns the raw
// JSON body on 2xx, a *StatusError on any other status, and a
// *TransportError when the request never produced a status.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, params)
}

// Post issues a parameterless POST, used for match parse requests.
func (c *Client) Post(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values) (json.RawMessage, error) {
	client := c.httpClient()
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	slog.Debug("fetching", "method", method, "endpoint", endpoint, "params", params.Encode())

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview := string(body)
		if len(preview) > bodyPreviewLimit {
			preview = preview[:bodyPreviewLimit]
		}
		slog.Warn("upstream error", "endpoint", endpoint, "status", resp.StatusCode, "body", preview)
		return nil, &StatusError{Method: method, Endpoint: endpoint, Code: resp.StatusCode, Body: preview}
	}

	slog.Debug("fetched", "endpoint", endpoint, "status", resp.StatusCode, "bytes", len(body))
	return json.RawMessage(body), nil
}

// GetJSON fetches endpoint and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	raw, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Close tears down the pooled connections. Safe to call when no request
// was ever issued.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
		slog.Info("HTTP client closed")
	}
}

// keyPrefix renders a loggable form of the bearer token; the full key never
// reaches the logs.
func keyPrefix(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "..."
}
