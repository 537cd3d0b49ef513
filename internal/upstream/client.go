/*
Copyright 2026 Altaira Labs.

SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package upstream performs the single outbound GET every Open Archieven tool
// is built on, and classifies its failures.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/altairalabs/openarchieven-mcp/internal/httputil"
	"github.com/altairalabs/openarchieven-mcp/pkg/metrics"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 20 * time.Second

// Config contains configuration for the upstream client.
type Config struct {
	// Timeout is the request timeout. Defaults to DefaultTimeout.
	Timeout time.Duration

	// UserAgent is sent on every request when non-empty.
	UserAgent string

	// RequestsPerSecond throttles outbound requests. Zero disables throttling.
	RequestsPerSecond float64

	// Transport is the base round tripper. Defaults to http.DefaultTransport.
	// It is always wrapped with otelhttp.
	Transport http.RoundTripper

	// TracerProvider receives the client spans. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// Metrics records per-request outcomes. May be nil.
	Metrics *metrics.Metrics
}

// Client issues GET requests against the Open Archieven API.
// It is safe for concurrent use and holds no per-call state.
type Client struct {
	config  Config
	log     logr.Logger
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new upstream client.
func NewClient(config Config, log logr.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	base := config.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var otelOpts []otelhttp.Option
	if config.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(config.TracerProvider))
	}

	c := &Client{
		config: config,
		log:    log.WithName("upstream"),
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(base, otelOpts...),
		},
	}
	if config.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}
	return c
}

// Fetch performs one GET against endpoint with params encoded as the query
// string and returns the decoded JSON document.
//
// Every failure is returned as *Error. There are no retries.
func (c *Client) Fetch(ctx context.Context, endpoint string, params Params) (any, error) {
	start := time.Now()
	data, err := c.fetch(ctx, endpoint, params)

	outcome := metrics.OutcomeOK
	var upErr *Error
	if errors.As(err, &upErr) {
		outcome = string(upErr.Kind)
	}
	c.config.Metrics.RecordUpstreamRequest(metricEndpoint(endpoint), outcome, time.Since(start).Seconds())

	return data, err
}

func (c *Client) fetch(ctx context.Context, endpoint string, params Params) (any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, connectionError(endpoint, params, err)
		}
	}

	req, err := c.buildRequest(ctx, endpoint, params)
	if err != nil {
		return nil, connectionError(endpoint, params, err)
	}

	c.log.V(1).Info("upstream request", "endpoint", endpoint, "params", params)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Info("upstream request failed", "endpoint", endpoint, "error", err.Error())
		return nil, connectionError(endpoint, params, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError(endpoint, params, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Info("upstream returned error status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &Error{
			Kind:       KindHTTP,
			URL:        endpoint,
			Params:     params,
			StatusCode: resp.StatusCode,
			Body:       Excerpt(body),
		}
	}

	data, err := decodeJSON(body)
	if err != nil {
		c.log.Info("upstream returned invalid JSON", "endpoint", endpoint, "error", err.Error())
		return nil, &Error{
			Kind:   KindInvalidJSON,
			URL:    endpoint,
			Params: params,
			Body:   Excerpt(body),
		}
	}

	c.log.V(1).Info("upstream response", "endpoint", endpoint, "status", resp.StatusCode, "bytes", len(body))
	return data, nil
}

// buildRequest creates the GET request with params merged into the query string.
func (c *Client) buildRequest(ctx context.Context, endpoint string, params Params) (*http.Request, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("endpoint URL must be absolute: %q", endpoint)
	}

	q := u.Query()
	for k, v := range params.Values() {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(httputil.HeaderAccept, httputil.ContentTypeJSON)
	if c.config.UserAgent != "" {
		req.Header.Set(httputil.HeaderUserAgent, c.config.UserAgent)
	}
	return req, nil
}

// decodeJSON parses a complete JSON document. Numbers are kept as json.Number
// so the raw payload re-encodes with the provider's literals.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}
	return data, nil
}

// metricEndpoint reduces an endpoint URL to its path for use as a label.
func metricEndpoint(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Path == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Path, "/")
}
