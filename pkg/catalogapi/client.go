// Package catalogapi is the REST client for the remote catalog collections.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/catalog-admin/pkg/config"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/angelmondragon/catalog-admin/pkg/metrics"
)

const (
	defaultTimeout              = 10 * time.Second
	defaultErrorBodyLimit int64 = 1024
)

var errBaseURLRequired = errors.New("catalog api base url is required")

// Client issues JSON requests against the catalog API. It never retries.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logg           *logger.Logger
	metrics        *metrics.GatewayMetrics
	errorBodyLimit int64
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		if logg != nil {
			c.logg = logg
		}
	}
}

func WithMetrics(m *metrics.GatewayMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithErrorBodyLimit caps how much of a failed response body is kept on the error.
func WithErrorBodyLimit(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.errorBodyLimit = limit
		}
	}
}

// NewClient builds the client from configuration.
func NewClient(cfg config.CatalogAPIConfig, opts ...Option) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := cfg.ResponseBodyReadLimit
	if limit <= 0 {
		limit = defaultErrorBodyLimit
	}

	client := &Client{
		baseURL:        strings.TrimSpace(cfg.BaseURL),
		httpClient:     &http.Client{Timeout: timeout},
		errorBodyLimit: limit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		return nil, errBaseURLRequired
	}
	if client.logg == nil {
		client.logg = logger.Nop()
	}
	return client, nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}

// do sends one request. body and out may be nil.
func (c *Client) do(ctx context.Context, resource, op, method, path string, body, out any) (err error) {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog api client not configured")
	}

	start := time.Now()
	ctx = c.logg.WithFields(ctx, map[string]any{
		"resource": resource,
		"action":   op,
		"method":   method,
		"path":     path,
	})
	status := 0
	defer func() {
		elapsed := time.Since(start)
		c.metrics.Observe(resource, op, elapsed, err)
		logCtx := c.logg.WithFields(ctx, map[string]any{
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
		})
		if err != nil {
			c.logg.Warn(c.logg.WithField(logCtx, "error", err.Error()), "catalog api request failed")
			return
		}
		c.logg.Debug(logCtx, "catalog api request")
	}()

	var reader io.Reader
	if body != nil {
		payload, merr := json.Marshal(body)
		if merr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, merr, fmt.Sprintf("marshal %s %s request", resource, op))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s %s request", resource, op))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, err, resource, op)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, c.errorBodyLimit))
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)), resource, op)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s %s response", resource, op))
	}
	return nil
}

func transportError(ctx context.Context, err error, resource, op string) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return pkgerrors.Wrap(pkgerrors.CodeCanceled, ctx.Err(), fmt.Sprintf("%s %s canceled", resource, op))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("execute %s %s request", resource, op))
}

func statusError(status int, body, resource, op string) error {
	code := pkgerrors.CodeUpstreamStatus
	switch status {
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	case http.StatusConflict:
		code = pkgerrors.CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = pkgerrors.CodeValidation
	}
	return pkgerrors.Wrap(code, fmt.Errorf("status %d: %s", status, body), fmt.Sprintf("%s %s request failed", resource, op)).
		WithDetails(pkgerrors.UpstreamDetails{Status: status, Body: body})
}
