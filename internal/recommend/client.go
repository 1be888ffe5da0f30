package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultBaseURL = "http://localhost:8080"

// maxBodySize bounds how much of a response is read before decoding.
const maxBodySize = 1 << 20

// MaxScore is the highest selectable minimum score.
const MaxScore = 9

var (
	// ErrTransport is returned when the service could not be reached or answered with a non-2xx status.
	ErrTransport = errors.New("transport failure")
	// ErrParse is returned when the response body is not a valid recommendation.
	ErrParse = errors.New("parse failure")
)

// FetchError describes a failed Fetch. Kind is ErrTransport or ErrParse.
type FetchError struct {
	Kind error
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Query is the filter a recommendation is drawn from.
type Query struct {
	Category     Category
	MinimumScore int
}

// Client fetches random recommendations.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the service base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey sends key in the X-Api-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new recommendation client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BuildURL returns the endpoint for q. Identical queries yield identical URLs.
func (c *Client) BuildURL(q Query) string {
	v := url.Values{}
	v.Set("type", q.Category.queryValue())
	v.Set("min_score", strconv.Itoa(clampScore(q.MinimumScore)))
	return c.baseURL + "/api/v1/recommendation?" + v.Encode()
}

// Fetch requests one random recommendation matching q.
// It makes a single attempt; every failure is a *FetchError.
func (c *Client) Fetch(ctx context.Context, q Query) (*Recommendation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(q), nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: ErrTransport, Err: fmt.Errorf("service error: %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Err: fmt.Errorf("read response: %w", err)}
	}

	var rec Recommendation
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, &FetchError{Kind: ErrParse, Err: fmt.Errorf("decode response: %w", err)}
	}
	if rec.ID == "" {
		return nil, &FetchError{Kind: ErrParse, Err: errors.New("response has no id")}
	}
	return &rec, nil
}

func clampScore(n int) int {
	return min(max(n, 0), MaxScore)
}
