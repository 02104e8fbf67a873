package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/wildwave/safari-admin/internal/infra/buildinfo"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
)

const (
	// DefaultBaseURL is used when no server is configured.
	DefaultBaseURL = "http://localhost:5000/api"

	// TokenKey is the storage key holding the bearer token.
	TokenKey = "authToken"

	// DefaultTimeout bounds a single request when the caller's context
	// has no deadline.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 10 << 20
)

// Client issues requests against the WildWave API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.KV
	limiter    *rate.Limiter
	metrics    *metric.Registry
	logger     logger.Logger
	userAgent  string

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTLSConfig sets the TLS configuration of the transport, for example
// to trust a private CA. A nil cfg keeps the default transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		if cfg == nil {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg
		c.httpClient.Transport = transport
	}
}

// WithStorage persists the token in kv and restores it on construction.
func WithStorage(kv storage.KV) Option {
	return func(c *Client) {
		c.store = kv
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables the cap.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithMetrics records request counts and latency in reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(c *Client) {
		c.metrics = reg
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for baseURL. A persisted token is loaded when a
// storage is configured; storage failures are logged and the client
// starts without a token.
func New(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    normalized,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.Default(),
		userAgent:  buildinfo.UserAgent("wildwave-cli"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.loadToken()
	return c, nil
}

// NormalizeBaseURL adds a scheme when missing and strips trailing slashes.
func NormalizeBaseURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		s = DefaultBaseURL
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "http://" + s
	}
	s = strings.TrimRight(s, "/")
	if s == "http:" || s == "https:" {
		return "", fmt.Errorf("invalid base url %q", raw)
	}
	return s, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) loadToken() {
	if c.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := c.store.Get(ctx, []byte(TokenKey))
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		return
	case err != nil:
		c.logger.Warn("load persisted token failed", "error", err)
		return
	}

	c.mu.Lock()
	c.token = string(raw)
	c.mu.Unlock()
}

// SetAuthToken replaces the held token. An empty token clears it. The
// change is mirrored to storage; a storage failure is logged, never
// returned, and the in-memory token is updated regardless.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if token != "" {
		err = c.store.Set(ctx, []byte(TokenKey), []byte(token))
	} else {
		err = c.store.Delete(ctx, []byte(TokenKey))
	}
	if err != nil {
		c.logger.Warn("persist token failed", "cleared", token == "", "error", err)
	}
}

// HasToken reports whether a token is held.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers http.Header
}

// WithHeader sets a header on one request, overriding the defaults except
// Authorization, which always reflects the held token.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Request issues one API call. body, when non-nil, is sent as JSON; a
// successful response is decoded into out when out is non-nil and the
// response has a body.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{headers: http.Header{}}
	for _, opt := range opts {
		opt(&ro)
	}

	requestID := ulid.Make().String()
	fail := func(status int, msg string, cause error) *RequestError {
		return &RequestError{
			Status:    status,
			Message:   msg,
			Method:    method,
			Endpoint:  endpoint,
			RequestID: requestID,
			Cause:     cause,
		}
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, msgRequestFailed, fmt.Errorf("marshal body: %w", err))
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return fail(0, msgRequestFailed, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	for k, vs := range ro.headers {
		req.Header[k] = vs
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := logger.L(ctx).With("method", method, "endpoint", endpoint, "request_id", requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, msgRequestFailed, fmt.Errorf("rate limit: %w", err))
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, endpoint, "error", start)
		log.Debug("request failed", "error", err)
		return fail(0, msgRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.observe(method, endpoint, strconv.Itoa(resp.StatusCode), start)
	if err != nil {
		return fail(resp.StatusCode, msgRequestFailed, fmt.Errorf("read body: %w", err))
	}

	log.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, errorMessage(resp.StatusCode, data), nil)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, "invalid response body", err)
	}
	return nil
}

// errorMessage extracts the server's message from an error body, falling
// back to "HTTP <status>" when the body is not JSON or has no message.
func errorMessage(status int, data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	return "HTTP " + strconv.Itoa(status)
}

func (c *Client) observe(method, endpoint, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	route := RouteLabel(endpoint)
	c.metrics.ClientRequests.WithLabelValues(method, route, status).Inc()
	c.metrics.ClientDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// RouteLabel replaces numeric path segments with {id} to keep metric
// label cardinality bounded.
func RouteLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	parts := strings.Split(endpoint, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseUint(p, 10, 64); err == nil {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
