// Package upstream contains the HTTP clients for the pool, category, and
// player progress sources.
//
// Payloads are parsed into explicit records at this boundary; absent fields
// get documented defaults (empty list, zero amount) instead of leaking raw
// maps into the core. Failures are reported as errors and translated to
// absence by the caller; no retries happen here.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/lootpool/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// client holds the pieces shared by all upstream clients.
type client struct {
	baseURL string
	httpc   *http.Client
}

// Option applies a configuration option to an upstream client.
type Option func(*client)

// WithHTTPClient overrides the HTTP client, e.g. to share a transport or to
// point tests at an httptest server.
func WithHTTPClient(h *http.Client) Option {
	return func(c *client) {
		if h != nil {
			c.httpc = h
		}
	}
}

func newClient(baseURL string, opts ...Option) client {
	c := client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// getJSON issues a GET and decodes the JSON body into out. Non-success
// status codes and transport errors are both reported as errors; the caller
// decides whether that means "absent" or something louder.
func (c client) getJSON(ctx context.Context, source, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", source, err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.ObserveUpstreamRequest(source, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordUpstreamError(source)
		return fmt.Errorf("%s request: %w", source, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamError(source)
		return fmt.Errorf("%s returned status %d: %w", source, resp.StatusCode, ErrUnexpectedStatus)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordUpstreamError(source)
		return fmt.Errorf("decode %s payload: %w", source, err)
	}

	return nil
}
