package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://app.indexing.co/dw"
	DefaultTimeout   = 30 * time.Second
	defaultUserAgent = "indexingco-cli"
	maxErrorBody     = 512
)

var (
	ErrMissingAPIKey = errors.New("api key is required")
	ErrMissingTarget = errors.New("either beat or hash must be provided")
)

// Service is the set of upstream operations the dashboard and CLI depend on.
type Service interface {
	ListPipelines(ctx context.Context) (PipelineList, error)
	CreatePipeline(ctx context.Context, req PipelineCreateRequest) (json.RawMessage, error)
	DeletePipeline(ctx context.Context, name string) (json.RawMessage, error)
	TestPipeline(ctx context.Context, name string, req PipelineTestRequest) (json.RawMessage, error)
	BackfillPipeline(ctx context.Context, name string, req PipelineBackfillRequest) (json.RawMessage, error)

	ListFilters(ctx context.Context) (FilterList, error)
	CreateFilter(ctx context.Context, req FilterMutationRequest) (json.RawMessage, error)
	RemoveFilterValues(ctx context.Context, req FilterMutationRequest) (json.RawMessage, error)

	ListTransformations(ctx context.Context) (TransformationList, error)
	TestTransformation(ctx context.Context, req TransformationTestRequest) (json.RawMessage, error)
	CreateTransformation(ctx context.Context, name, code string) (json.RawMessage, error)
}

var _ Service = (*Client)(nil)

// StatusError is returned when the API answers with a 4xx or 5xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the indexing HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithAPIKey returns a copy of the client that authenticates with key.
// Requests already running on the original keep the old key.
func (c *Client) WithAPIKey(key string) *Client {
	clone := *c
	clone.apiKey = key
	return &clone
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqURL := buildURL(c.baseURL, path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       snippet(data),
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("decode response: invalid JSON from %s %s", method, path)
	}
	return json.RawMessage(trimmed), nil
}

// buildURL joins an already-escaped path onto the base URL.
func buildURL(base *url.URL, path string, query url.Values) string {
	s := strings.TrimSuffix(base.String(), "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		s += "?" + query.Encode()
	}
	return s
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "…"
	}
	return s
}
