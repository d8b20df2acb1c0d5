package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"finitefield.org/vurel-web/internal/observability"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 4 << 20
	maxErrorBytes  = 256
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues single-attempt JSON GETs against the storefront API.
type Client struct {
	baseURL string
	http    HTTPClient
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport used for requests.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// NewClient returns a client rooted at baseURL. An empty baseURL yields a
// client whose every call fails with ErrNoBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the configured upstream.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches path and decodes the body into dst. resource is a low
// cardinality label used for metrics and spans. No retries are attempted.
func (c *Client) GetJSON(ctx context.Context, resource, path string, dst any) (err error) {
	if c == nil || c.baseURL == "" {
		return &NetworkError{URL: path, Err: ErrNoBaseURL}
	}
	url := c.baseURL + path

	start := time.Now()
	ctx, finish := observability.StartClientSpan(ctx, resource, http.MethodGet, path, url)
	status := 0
	defer func() {
		finish(status, err)
		outcome := "ok"
		if err != nil {
			outcome = Classify(err)
		}
		observability.ObserveFetch(resource, outcome, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{URL: url, Status: resp.StatusCode, Body: drainError(resp.Body)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBytes))
	return strings.TrimSpace(string(b))
}
