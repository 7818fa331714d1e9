package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/rentdesk/pkg/logging"
)

const (
	// RequestIDHeader carries a per-request UUID so server logs can be correlated.
	RequestIDHeader = "X-Request-ID"
	// TotalCountHeader carries the total number of entities matching a query.
	TotalCountHeader = "X-Total-Count"

	contentTypeJSON       = "application/json"
	contentTypeMergePatch = "application/merge-patch+json"
)

// DefaultUserAgent identifies rentdesk to the backend.
const DefaultUserAgent = "rentdesk"

// EndpointResolver turns an API path such as "api/books" into an absolute URL.
type EndpointResolver interface {
	EndpointFor(api string) string
}

// BaseURL is an EndpointResolver that joins paths onto a fixed base URL.
type BaseURL string

// EndpointFor implements EndpointResolver.
func (b BaseURL) EndpointFor(api string) string {
	base := string(b)
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	for len(api) > 0 && api[0] == '/' {
		api = api[1:]
	}
	return base + "/" + api
}

// Client is an HTTP client for the library-rental backend.
type Client struct {
	endpoints  EndpointResolver
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.Component(logger, "apiclient")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client resolving resource URLs through endpoints.
func New(endpoints EndpointResolver, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: DefaultUserAgent,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint resolves api against the configured base URL.
func (c *Client) Endpoint(api string) string {
	return c.endpoints.EndpointFor(api)
}

// Availability returns how many copies of the book are currently available for rent.
func (c *Client) Availability(ctx context.Context, bookID int64) (int64, error) {
	q := url.Values{}
	q.Set("bookId", strconv.FormatInt(bookID, 10))
	return c.getCount(ctx, c.Endpoint("api/availability")+"?"+q.Encode())
}

// HTTP helpers

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, rawURL, "", nil)
}

func (c *Client) post(ctx context.Context, rawURL string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, rawURL, contentTypeJSON, body)
}

func (c *Client) put(ctx context.Context, rawURL string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPut, rawURL, contentTypeJSON, body)
}

func (c *Client) patch(ctx context.Context, rawURL string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPatch, rawURL, contentTypeMergePatch, body)
}

func (c *Client) delete(ctx context.Context, rawURL string) (*http.Response, error) {
	return c.send(ctx, http.MethodDelete, rawURL, "", nil)
}

func (c *Client) send(ctx context.Context, method, rawURL, contentType string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", req.Method, "url", req.URL.String(), "requestId", requestID, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.URL.Redacted(), err)
	}
	c.logger.Debug("request completed",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"requestId", requestID,
	)
	return resp, nil
}

// decode reads a JSON body into a new T. An empty or null body yields nil.
func decode[T any](resp *http.Response) (*T, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &v, nil
}

func (c *Client) getCount(ctx context.Context, rawURL string) (int64, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, parseError(resp)
	}
	n, err := decode[int64](resp)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, nil
	}
	return *n, nil
}
