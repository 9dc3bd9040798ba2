// Package upstream adapts the gateway's repository ports to the Afya Yetu
// registry's REST API. All traffic funnels through one configured Client so
// that credential attachment, anti-forgery handling, and unauthorized
// detection behave identically for every resource.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/api/metrics"
)

const csrfHeader = "X-CSRFToken"

// CredentialSource supplies the bearer credential attached to every request
// and receives the unauthorized notification. The session service implements
// it; binding happens after construction because the session service itself
// depends on this client.
type CredentialSource interface {
	Token() string
	Invalidate()
}

// Client is the configured HTTP wrapper for the upstream registry.
type Client struct {
	rc  *resty.Client
	log zerolog.Logger

	mu    sync.Mutex
	csrf  string // cached anti-forgery token
	creds CredentialSource
}

// New builds a Client rooted at baseURL. A zero timeout leaves the transport
// default in place.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &Client{rc: rc, log: log}
}

// BindSession attaches the credential source. Until bound, requests go out
// without an Authorization header and 401s are surfaced without invalidation.
func (c *Client) BindSession(src CredentialSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = src
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do issues a single request. Mutating methods carry the anti-forgery token;
// when none is cached a dedicated token fetch runs first, and a token
// rejection triggers exactly one refresh-and-retry. Nothing else is retried.
func (c *Client) do(ctx context.Context, method, path string, body any, query map[string]string) ([]byte, error) {
	mutating := method != http.MethodGet && method != http.MethodHead

	if mutating {
		if _, err := c.ensureCSRF(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.send(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}

	// Stale anti-forgery token: refresh once and retry the original request.
	if mutating && resp.StatusCode() == http.StatusForbidden && isCSRFRejection(resp.Body()) {
		if _, err := c.refreshCSRF(ctx); err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, path, body, query)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.notifyUnauthorized(method, path)
	}

	if resp.IsError() {
		uerr := parseError(resp.StatusCode(), resp.Body())
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode()).
			Str("detail", uerr.Detail).
			Msg("upstream error response")
		return nil, uerr
	}

	return resp.Body(), nil
}

// send performs one round trip with headers attached, recording metrics.
func (c *Client) send(ctx context.Context, method, path string, body any, query map[string]string) (*resty.Response, error) {
	req := c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	if token := c.token(); token != "" {
		req.SetHeader("Authorization", "Token "+token)
	}
	if csrf := c.cachedCSRF(); csrf != "" {
		req.SetHeader(csrfHeader, csrf)
	}
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream transport failure")
		return nil, fmt.Errorf("upstream %s %s: %w", method, path, ErrTransport{Cause: err})
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(method, outcome(resp.StatusCode())).Inc()
	return resp, nil
}

// ensureCSRF returns the cached anti-forgery token, fetching one first when
// none is cached.
func (c *Client) ensureCSRF(ctx context.Context) (string, error) {
	if t := c.cachedCSRF(); t != "" {
		return t, nil
	}
	return c.refreshCSRF(ctx)
}

// refreshCSRF performs the dedicated token-fetch round trip and caches the
// result.
func (c *Client) refreshCSRF(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/csrf-token/", nil)
	if err != nil {
		return "", fmt.Errorf("csrf token fetch: %w", err)
	}
	token, err := decodeCSRF(body)
	if err != nil {
		return "", err
	}
	metrics.CSRFRefreshesTotal.Inc()

	c.mu.Lock()
	c.csrf = token
	c.mu.Unlock()
	return token, nil
}

func (c *Client) cachedCSRF() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.csrf
}

func (c *Client) token() string {
	c.mu.Lock()
	src := c.creds
	c.mu.Unlock()
	if src == nil {
		return ""
	}
	return src.Token()
}

// notifyUnauthorized reports a 401 to the session; exactly-once semantics per
// session generation live there, so every 401 may safely report.
func (c *Client) notifyUnauthorized(method, path string) {
	c.mu.Lock()
	src := c.creds
	c.mu.Unlock()
	if src == nil {
		return
	}
	c.log.Info().Str("method", method).Str("path", path).Msg("unauthorized upstream response")
	src.Invalidate()
}

func outcome(status int) string {
	switch {
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "ok"
	}
}
