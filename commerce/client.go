package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxBodyBytes bounds how much of an upstream response is read. The full catalog
// comes back in a single page.
const maxBodyBytes = 32 << 20

type Config struct {
	BaseURL    string // e.g. https://api.bigcommerce.com
	StoreHash  string
	Token      string
	ChannelID  int
	HTTPClient *http.Client // nil means http.DefaultClient
}

// Client talks to the commerce platform REST API. Every call is attempted exactly
// once; nothing is cached.
type Client struct {
	httpClient *http.Client
	storeURL   string
	token      string
	channelID  int
}

// New refuses to build a client without credentials.
func New(cfg Config) (*Client, error) {
	if cfg.StoreHash == "" || cfg.Token == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("commerce: base URL is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	channel := cfg.ChannelID
	if channel == 0 {
		channel = 1
	}
	return &Client{
		httpClient: hc,
		storeURL:   strings.TrimSuffix(cfg.BaseURL, "/") + "/stores/" + cfg.StoreHash,
		token:      cfg.Token,
		channelID:  channel,
	}, nil
}

// do sends one request and decodes a 2xx JSON body into out (when out is non-nil).
// It returns ErrNoContent for 204 responses.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	endpoint := c.storeURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: %w: read body: %v", op, ErrFetchFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Body: truncate(string(raw), 512)}
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		if out == nil {
			return nil
		}
		return ErrNoContent
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return nil
}

// envelope is the v3 response wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
