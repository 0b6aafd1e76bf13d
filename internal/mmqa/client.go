// Package mmqa calls the multimedia question answering service.
package mmqa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/apperr"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/pkg/httputil"
)

const (
	serviceName    = "mmqa"
	defaultTimeout = 60 * time.Second
)

type ClientOption func(*Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// Client asks the multimedia pipeline with GET <endpoint>?u=<userid>&q=<question>.
type Client struct {
	endpoint   url.URL
	http       *http.Client
	timeout    time.Duration
	maxRetries int
}

func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse mmqa endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("mmqa endpoint must be an absolute url: %q", endpoint)
	}

	c := &Client{
		endpoint:   *u,
		http:       &http.Client{Timeout: defaultTimeout},
		maxRetries: httputil.DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = httputil.WithClientTimeout(c.http, c.timeout)
	return c, nil
}

// response is the service payload. Any response field may be missing and an
// error payload carries only Error.
type response struct {
	domain.ResponseRecord
	Error *domain.ErrorMessage `json:"Error,omitempty"`
}

// ServiceError is an error payload returned by the multimedia service.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "mmqa service error: " + e.Message
}

// Answer returns the multimedia response as sent. Missing fields are left
// at their zero value.
func (c *Client) Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error) {
	reqURL := c.endpoint
	params := reqURL.Query()
	params.Set("u", userID)
	params.Set("q", question)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mmqa create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, apperr.NewUpstream(serviceName, fmt.Errorf("request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewUpstream(serviceName, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewUpstream(serviceName, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperr.NewUpstream(serviceName, fmt.Errorf("parse response: %w", err))
	}
	if out.Error != nil {
		return nil, apperr.NewUpstream(serviceName, &ServiceError{Message: out.Error.Message})
	}

	slog.Debug("MMQA answered", "userid", userID, "answers", len(out.Answers))
	return &out.ResponseRecord, nil
}
