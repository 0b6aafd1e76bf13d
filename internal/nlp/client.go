package nlp

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

	"github.com/DjordjeVuckovic/post-qa/internal/apperr"
	"github.com/DjordjeVuckovic/post-qa/pkg/httputil"
)

// labelPrefix is prepended to raw labels by fastText style classifiers.
const labelPrefix = "__label__"

const defaultTimeout = 30 * time.Second

type ClientOption func(client *Client)

// Client talks to an NLP service exposing POST /annotate and POST /classify.
// It implements both Annotator and Classifier.
type Client struct {
	base       url.URL
	http       *http.Client
	timeout    time.Duration
	maxRetries int
}

func NewClient(baseUrl string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse nlp base url: %w", err)
	}

	client := &Client{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		maxRetries: httputil.DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(client)
	}
	client.http = httputil.WithClientTimeout(client.http, client.timeout)

	return client, nil
}

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.http = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.timeout = timeout
	}
}

func WithMaxRetries(n int) ClientOption {
	return func(client *Client) {
		client.maxRetries = n
	}
}

type textRequest struct {
	Text string `json:"text"`
}

func (c *Client) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return &Annotation{}, nil
	}

	var resp Annotation
	if err := c.do(ctx, "/annotate", textRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	return &resp, nil
}

func (c *Client) Classify(ctx context.Context, text string) (*Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.NewValidation("missing text to classify")
	}

	var resp Classification
	if err := c.do(ctx, "/classify", textRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	resp.Label = strings.TrimPrefix(resp.Label, labelPrefix)

	return &resp, nil
}

func (c *Client) do(ctx context.Context, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.http, request, c.maxRetries)
	if err != nil {
		return apperr.NewUpstream("nlp", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return apperr.NewUpstream("nlp", fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody)))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
