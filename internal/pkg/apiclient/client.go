package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
	"golang.org/x/oauth2"
)

// maxResponseSize bounds how much of an upstream body is read.
const maxResponseSize = 20 << 20

var (
	// ErrUnauthorized matches any *APIError carrying a 401.
	ErrUnauthorized = errors.New("upstream rejected the access token")
	// ErrUnavailable wraps transport failures (DNS, refused, timeout).
	ErrUnavailable = errors.New("upstream HRMS API unavailable")
)

// APIError is a non-2xx answer from the HRMS API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hrms API error [%d] %s %s: %s", e.StatusCode, e.Method, e.Path, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client wraps the HRMS REST API. Each call carries the caller's bearer token.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	metrics        *metrics.Metrics
	onUnauthorized func(ctx context.Context)
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUnauthorizedHook registers fn to run whenever an authenticated call is
// answered with 401.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid upstream base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetUnauthorizedHook installs the 401 hook after construction.
func (c *Client) SetUnauthorizedHook(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, token, p string, query url.Values) ([]byte, error) {
	return c.doJSON(ctx, token, http.MethodGet, p, query, nil)
}

func (c *Client) Post(ctx context.Context, token, p string, body interface{}) ([]byte, error) {
	return c.doJSON(ctx, token, http.MethodPost, p, nil, body)
}

func (c *Client) Put(ctx context.Context, token, p string, body interface{}) ([]byte, error) {
	return c.doJSON(ctx, token, http.MethodPut, p, nil, body)
}

func (c *Client) Delete(ctx context.Context, token, p string) error {
	_, err := c.doJSON(ctx, token, http.MethodDelete, p, nil, nil)
	return err
}

// PostMultipart submits form as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, token, p string, form Multipart) ([]byte, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode multipart body: %w", err)
	}
	return c.do(ctx, token, http.MethodPost, p, nil, body, contentType)
}

func (c *Client) doJSON(ctx context.Context, token, method, p string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, token, method, p, query, reader, contentType)
}

func (c *Client) endpoint(p string, query url.Values) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, token, method, p string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(p, query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.clientFor(token).Do(req)
	if c.metrics != nil {
		c.metrics.UpstreamDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.count(method, 0)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, p, err)
	}
	defer resp.Body.Close()
	c.count(method, resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %v", ErrUnavailable, method, p, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       p,
			Message:    ExtractMessage(data, resp.StatusCode),
		}
		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, apiErr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return payload.Unwrap(data), nil
}

// clientFor attaches the bearer token through an oauth2 transport.
func (c *Client) clientFor(token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}
}

func (c *Client) count(method string, status int) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamRequests.WithLabelValues(method, metrics.StatusClass(status)).Inc()
}

// ExtractMessage pulls a human-readable message out of an error body. It
// understands "message", "error" (string or object), "detail" and "errors".
func ExtractMessage(body []byte, status int) string {
	fallback := http.StatusText(status)
	if fallback == "" {
		fallback = fmt.Sprintf("status %d", status)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			return text
		}
		return fallback
	}

	for _, key := range []string{"message", "error", "detail", "msg"} {
		if msg := messageFrom(raw[key]); msg != "" {
			return msg
		}
	}
	if msg := messageFrom(raw["errors"]); msg != "" {
		return msg
	}
	return fallback
}

func messageFrom(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if msg := messageFrom(obj[key]); msg != "" {
				return msg
			}
		}
		return ""
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
		return messageFrom(list[0])
	}
	return ""
}
