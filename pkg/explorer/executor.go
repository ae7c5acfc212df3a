package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/insightone/insightone-mcp/pkg/contenttype"
)

// Executor issues endpoint calls against the API.
type Executor struct {
	baseURL    string
	httpClient *http.Client
}

// ExecutorOption is a functional option for configuring the Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ExecutorOption {
	return func(x *Executor) {
		x.httpClient = httpClient
	}
}

// NewExecutor creates an Executor for the API at baseURL.
func NewExecutor(baseURL string, opts ...ExecutorOption) *Executor {
	x := &Executor{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// BaseURL returns the API base URL.
func (x *Executor) BaseURL() string {
	return x.baseURL
}

// BuildRequest builds the request Execute would send.
func (x *Executor) BuildRequest(ctx context.Context, e *Endpoint, token string) (*http.Request, error) {
	if token == "" {
		return nil, &MissingTokenError{EndpointID: e.ID}
	}

	req, err := http.NewRequestWithContext(ctx, e.Method, RequestURL(x.baseURL, e), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("accept", AcceptFor(e))
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

// Execute issues exactly one request for e with the current parameter values.
//
// An empty token fails with *MissingTokenError before any I/O. A non-2xx
// answer fails with *HTTPStatusError, a transport failure with *NetworkError
// and an unparsable JSON body with *DecodeError. Required parameters left
// empty are omitted from the query, not rejected.
func (x *Executor) Execute(ctx context.Context, e *Endpoint, token string) (*ExecutionResult, error) {
	req, err := x.BuildRequest(ctx, e, token)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := x.httpClient.Do(req)
	if err != nil {
		slog.Debug("endpoint call failed",
			slog.String("endpoint", e.ID),
			slog.String("method", e.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("reading response: %w", err)}
	}
	duration := time.Since(start).Milliseconds()

	slog.Debug("endpoint call completed",
		slog.String("endpoint", e.ID),
		slog.String("method", e.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", duration),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(body),
		}
	}

	result := &ExecutionResult{
		EndpointID: e.ID,
		Method:     e.Method,
		URL:        req.URL.String(),
		Status:     resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		DurationMs: duration,
		body:       body,
	}

	ct := resp.Header.Get("Content-Type")
	result.ContentKind = contenttype.Detect(ct)
	if result.ContentKind == contenttype.KindCSV {
		result.Payload = CSVPayload{CSV: string(body)}
		return result, nil
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Status: resp.StatusCode, ContentType: ct, Err: err}
	}
	result.Payload = payload
	return result, nil
}

// Run executes e like Execute but converts HTTP, network and decode failures
// into a synthetic result (see ResultFromError). Only *MissingTokenError and
// request construction errors are returned as errors.
func (x *Executor) Run(ctx context.Context, e *Endpoint, token string) (*ExecutionResult, error) {
	result, err := x.Execute(ctx, e, token)
	if err == nil {
		return result, nil
	}

	var statusErr *HTTPStatusError
	var netErr *NetworkError
	var decodeErr *DecodeError
	if !errors.As(err, &statusErr) && !errors.As(err, &netErr) && !errors.As(err, &decodeErr) {
		return nil, err
	}

	result = ResultFromError(err)
	result.EndpointID = e.ID
	result.Method = e.Method
	result.URL = RequestURL(x.baseURL, e)
	return result, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// flattenHeaders lowercases header names and joins repeated values with ", ".
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}
