package qa

import (
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

const defaultTimeout = 30 * time.Second

type RemoteOption func(*Remote)

// Remote calls a QA service that takes the question and paragraph as query
// parameters of a POST request and answers with {"result": "..."}.
type Remote struct {
	endpoint   url.URL
	http       *http.Client
	timeout    time.Duration
	maxRetries int
}

func NewRemote(endpoint string, opts ...RemoteOption) (*Remote, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse qa endpoint: %w", err)
	}

	r := &Remote{
		endpoint:   *u,
		http:       &http.Client{Timeout: defaultTimeout},
		maxRetries: httputil.DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.http = httputil.WithClientTimeout(r.http, r.timeout)
	return r, nil
}

func WithHttpClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		r.http = client
	}
}

func WithTimeout(timeout time.Duration) RemoteOption {
	return func(r *Remote) {
		r.timeout = timeout
	}
}

func WithMaxRetries(n int) RemoteOption {
	return func(r *Remote) {
		r.maxRetries = n
	}
}

type remoteResponse struct {
	Result string `json:"result"`
}

func (r *Remote) Answer(ctx context.Context, question, passage string) (string, error) {
	reqURL := r.endpoint
	params := reqURL.Query()
	params.Set("question", question)
	params.Set("paragraph", passage)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("qa create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, r.http, req, r.maxRetries)
	if err != nil {
		return "", apperr.NewUpstream("qa", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("qa read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperr.NewUpstream("qa", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var out remoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("qa parse response: %w", err)
	}

	result := strings.TrimSpace(out.Result)
	switch result {
	case ErrParagraphTooLong.Error():
		return "", ErrParagraphTooLong
	case ErrQuestionTooLong.Error():
		return "", ErrQuestionTooLong
	}
	return result, nil
}
