package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// CatalogPath is the catalog route, relative to the base URL.
const CatalogPath = "/api/api/tunnel/admin/all_endpoints_by_tag"

// Client fetches the endpoint catalog. Endpoint calls themselves go through
// explorer.Executor, which shares the base URL and HTTP client.
type Client struct {
	baseURL      string
	catalogToken string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL. A trailing slash is dropped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithCatalogToken sets the static bearer token used for the catalog route.
// It is a service credential, distinct from the per-endpoint user tokens.
func WithCatalogToken(token string) Option {
	return func(c *Client) {
		c.catalogToken = token
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New returns a Client for DefaultBaseURL unless opts say otherwise.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the client used for requests.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// get fetches path with the catalog credentials and returns the body of a
// successful response. Status codes from 400 up become an *APIError.
func (c *Client) get(ctx context.Context, path string) (body []byte, err error) {
	start := time.Now()
	status := 0
	defer func() {
		attrs := []any{
			slog.String("path", path),
			slog.Int("status", status),
			slog.Int("bytes", len(body)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		slog.Debug("catalog request", attrs...)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.catalogToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.catalogToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if status >= http.StatusBadRequest {
		return nil, c.parseError(resp)
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// parseError extracts an APIError from an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil {
		if msg := errResp.message(); msg != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}
