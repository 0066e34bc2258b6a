// Package appwrite implements the store.Store interface over the
// Appwrite REST v1 surface. It is the only package that sees raw
// transport errors; everything it returns is a *apperror.Error.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/healthmaster/healthmaster-go/internal/config"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
	"github.com/healthmaster/healthmaster-go/pkg/logger"
	"github.com/healthmaster/healthmaster-go/pkg/metrics"
)

const sessionHeader = "X-Appwrite-Session"

// Client talks to an Appwrite-compatible endpoint. It holds the active
// session secret after CreateSession; construct one Client per logical
// user context and inject it, never share a package-level instance.
type Client struct {
	endpoint string
	project  string
	http     *http.Client
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	session string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(cfg config.StoreConfig, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		project:  cfg.ProjectID,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("appwrite")
	return c
}

// Session returns the active session secret, empty when logged out.
func (c *Client) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) setSession(secret string) {
	c.mu.Lock()
	c.session = secret
	c.mu.Unlock()
}

// do performs one request/response exchange. body is JSON-encoded when
// non-nil; the 2xx response is decoded into out when out is non-nil.
// Non-2xx responses are mapped into typed errors exactly once, here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, op, resource string) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperror.New(apperror.UnknownRemote, op, resource, "failed to encode request", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, query), reqBody)
	if err != nil {
		return apperror.New(apperror.UnknownRemote, op, resource, "failed to build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, op, resource)
}

func (c *Client) requestURL(path string, query url.Values) string {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(req *http.Request, out interface{}, op, resource string) error {
	req.Header.Set("X-Appwrite-Project", c.project)
	if s := c.Session(); s != "" {
		req.Header.Set(sessionHeader, s)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, resource, "transport_error", start)
		c.logger.Error(err, "store request failed", "op", op, "resource", resource)
		return apperror.New(apperror.UnknownRemote, op, resource, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := decodeRemoteError(resp.Body)
		c.observe(op, resource, fmt.Sprintf("%d", resp.StatusCode), start)
		mapped := mapError(op, resource, resp.StatusCode, remote.Type, remote.Message)
		c.logger.Debug("store request rejected",
			"op", op, "resource", resource, "status", resp.StatusCode, "type", remote.Type)
		return mapped
	}

	c.observe(op, resource, "ok", start)
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.New(apperror.UnknownRemote, op, resource, "failed to decode response", err)
	}
	return nil
}

func (c *Client) observe(op, resource, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.StoreOperations.WithLabelValues(op, resource, status).Inc()
	c.metrics.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
