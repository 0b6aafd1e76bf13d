package httputil

import (
	"net/http"
	"time"
)

// WithClientTimeout returns a copy of client using timeout. The given client,
// which may be shared like http.DefaultClient, is never modified. A nil client
// yields a fresh one; a non-positive timeout keeps the client's own.
func WithClientTimeout(client *http.Client, timeout time.Duration) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		return client
	}
	cp := *client
	cp.Timeout = timeout
	return &cp
}
