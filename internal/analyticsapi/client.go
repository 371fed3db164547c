// Package analyticsapi issues the fixed set of requests exposed by the loan
// sales analytics service. It performs no retry, caching or deduplication.
package analyticsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is used when no base URL was configured at all.
const DefaultBaseURL = "http://localhost:8000"

// Observer receives one notification per completed request.
type Observer interface {
	ObserveAPICall(operation string, status int, duration time.Duration)
}

// Client maps logical analytics operations onto HTTP requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithObserver installs a request observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New constructs a client against baseURL. An empty baseURL, or a path such
// as "/backend", is resolved against the page origin; see ForOrigin.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base, which may be empty.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SameOrigin reports whether the client resolves paths against the page origin.
func (c *Client) SameOrigin() bool {
	return c.baseURL == "" || strings.HasPrefix(c.baseURL, "/")
}

// ForOrigin returns a client bound to origin when the configured base is
// empty or origin-relative. A client with an absolute base is returned
// unchanged.
func (c *Client) ForOrigin(origin string) *Client {
	if !c.SameOrigin() {
		return c
	}
	clone := *c
	clone.baseURL = strings.TrimRight(origin, "/") + c.baseURL
	return &clone
}

// Get issues a GET against path with the given query values.
func (c *Client) Get(ctx context.Context, operation, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, operation, http.MethodGet, path, query, nil)
}

// Post issues a POST against path. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, operation, path string, query url.Values, body any) (json.RawMessage, error) {
	return c.do(ctx, operation, http.MethodPost, path, query, body)
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("analyticsapi: encode %s body: %w", operation, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Operation: operation, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, 0, start)
		return nil, &Error{Kind: KindTransport, Operation: operation, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	payload, err := io.ReadAll(resp.Body)
	c.observe(operation, resp.StatusCode, start)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Operation: operation, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindStatus, Operation: operation, StatusCode: resp.StatusCode, Body: payload}
	}
	if !json.Valid(payload) {
		return nil, &Error{Kind: KindDecode, Operation: operation, StatusCode: resp.StatusCode, Body: payload, Err: errInvalidJSON}
	}
	return json.RawMessage(payload), nil
}

func (c *Client) observe(operation string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveAPICall(operation, status, time.Since(start))
	}
}
