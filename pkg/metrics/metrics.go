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

// Package metrics provides Prometheus metrics for the Open Archieven tool server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OutcomeOK is the upstream outcome label for a parsed JSON response.
// Failed requests use their error kind as the outcome.
const OutcomeOK = "ok"

// DefaultToolDurationBuckets are the default histogram buckets for tool call durations.
// A fetch-all call can chain many upstream requests, hence the long tail.
var DefaultToolDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 60, 120}

// DefaultUpstreamDurationBuckets are the default histogram buckets for single
// upstream requests. The client timeout is 20s.
var DefaultUpstreamDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20}

// DefaultPageBuckets are the default histogram buckets for pages fetched per
// paginated call.
var DefaultPageBuckets = []float64{1, 2, 3, 5, 10, 25, 50, 100}

// Metrics holds Prometheus metrics for tool invocations and the upstream API.
type Metrics struct {
	// ToolCallsTotal is the total number of tool calls by tool and status.
	ToolCallsTotal *prometheus.CounterVec
	// ToolErrorsTotal counts error envelopes by tool and error kind.
	ToolErrorsTotal *prometheus.CounterVec
	// ToolCallDuration is the histogram of tool call durations.
	ToolCallDuration *prometheus.HistogramVec

	// UpstreamRequestsTotal counts upstream GETs by endpoint and outcome.
	UpstreamRequestsTotal *prometheus.CounterVec
	// UpstreamRequestDuration is the histogram of upstream request durations.
	UpstreamRequestDuration *prometheus.HistogramVec

	// PagesPerFetch is the histogram of pages fetched by a paginated call.
	PagesPerFetch prometheus.Histogram
}

// Config configures the metrics.
type Config struct {
	// Service is attached to every metric as a constant label.
	Service string
	// ToolDurationBuckets for the tool call duration histogram.
	// If nil, defaults to DefaultToolDurationBuckets.
	ToolDurationBuckets []float64
	// UpstreamDurationBuckets for the upstream request duration histogram.
	// If nil, defaults to DefaultUpstreamDurationBuckets.
	UpstreamDurationBuckets []float64
}

// NewMetrics creates and registers all metrics on the default registerer.
func NewMetrics(cfg Config) *Metrics {
	return NewMetricsWithRegisterer(cfg, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates and registers all metrics on reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetricsWithRegisterer(cfg Config, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": cfg.Service}

	toolBuckets := cfg.ToolDurationBuckets
	if toolBuckets == nil {
		toolBuckets = DefaultToolDurationBuckets
	}

	upstreamBuckets := cfg.UpstreamDurationBuckets
	if upstreamBuckets == nil {
		upstreamBuckets = DefaultUpstreamDurationBuckets
	}

	factory := promauto.With(reg)

	return &Metrics{
		ToolCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "openarchieven_tool_calls_total",
			Help:        "Total number of tool calls",
			ConstLabels: labels,
		}, []string{"tool", "status"}),

		ToolErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "openarchieven_tool_errors_total",
			Help:        "Total number of tool calls that returned an error envelope",
			ConstLabels: labels,
		}, []string{"tool", "kind"}),

		ToolCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "openarchieven_tool_call_duration_seconds",
			Help:        "Tool call duration in seconds",
			ConstLabels: labels,
			Buckets:     toolBuckets,
		}, []string{"tool"}),

		UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "openarchieven_upstream_requests_total",
			Help:        "Total number of requests made to the Open Archieven API",
			ConstLabels: labels,
		}, []string{"endpoint", "outcome"}),

		UpstreamRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "openarchieven_upstream_request_duration_seconds",
			Help:        "Open Archieven API request duration in seconds",
			ConstLabels: labels,
			Buckets:     upstreamBuckets,
		}, []string{"endpoint"}),

		PagesPerFetch: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "openarchieven_pagination_pages",
			Help:        "Pages fetched by a single paginated tool call",
			ConstLabels: labels,
			Buckets:     DefaultPageBuckets,
		}),
	}
}

// ToolCallMetrics contains the metrics for a single tool call.
type ToolCallMetrics struct {
	ToolName        string
	DurationSeconds float64
	// ErrorKind is empty for a success envelope.
	ErrorKind string
}

// RecordToolCall records metrics for a tool call. A nil receiver is a no-op.
func (m *Metrics) RecordToolCall(tc ToolCallMetrics) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if tc.ErrorKind != "" {
		status = StatusError
		m.ToolErrorsTotal.WithLabelValues(tc.ToolName, tc.ErrorKind).Inc()
	}
	m.ToolCallsTotal.WithLabelValues(tc.ToolName, status).Inc()
	m.ToolCallDuration.WithLabelValues(tc.ToolName).Observe(tc.DurationSeconds)
}

// RecordUpstreamRequest records a single upstream request. A nil receiver is a no-op.
func (m *Metrics) RecordUpstreamRequest(endpoint, outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordPages records how many pages a paginated call fetched. A nil receiver is a no-op.
func (m *Metrics) RecordPages(pages int) {
	if m == nil {
		return
	}
	m.PagesPerFetch.Observe(float64(pages))
}
