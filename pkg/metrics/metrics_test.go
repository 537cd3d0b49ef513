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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetricsWithRegisterer(Config{Service: "test"}, reg), reg
}

func TestNewMetricsWithRegisterer(t *testing.T) {
	m, _ := newTestMetrics(t)

	assert.NotNil(t, m.ToolCallsTotal)
	assert.NotNil(t, m.ToolErrorsTotal)
	assert.NotNil(t, m.ToolCallDuration)
	assert.NotNil(t, m.UpstreamRequestsTotal)
	assert.NotNil(t, m.UpstreamRequestDuration)
	assert.NotNil(t, m.PagesPerFetch)
}

func TestRecordToolCall_Success(t *testing.T) {
	m, reg := newTestMetrics(t)

	m.RecordToolCall(ToolCallMetrics{ToolName: "search_people", DurationSeconds: 0.2})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("search_people", StatusSuccess)))
	assert.Equal(t, 0, testutil.CollectAndCount(m.ToolErrorsTotal))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["openarchieven_tool_calls_total"])
	assert.True(t, names["openarchieven_tool_call_duration_seconds"])
}

func TestRecordToolCall_Error(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordToolCall(ToolCallMetrics{ToolName: "get_census_data", DurationSeconds: 0.01, ErrorKind: "invalid_year"})
	m.RecordToolCall(ToolCallMetrics{ToolName: "get_census_data", DurationSeconds: 0.01, ErrorKind: "invalid_year"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("get_census_data", StatusError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolErrorsTotal.WithLabelValues("get_census_data", "invalid_year")))
}

func TestRecordUpstreamRequest(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordUpstreamRequest("1.1/records/search.json", OutcomeOK, 0.3)
	m.RecordUpstreamRequest("1.1/records/search.json", "http_error", 0.1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("1.1/records/search.json", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("1.1/records/search.json", "http_error")))
}

func TestRecordPages(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordPages(3)

	assert.Equal(t, 1, testutil.CollectAndCount(m.PagesPerFetch))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordToolCall(ToolCallMetrics{ToolName: "x"})
		m.RecordUpstreamRequest("e", OutcomeOK, 1)
		m.RecordPages(1)
	})
}

func TestCustomBuckets(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegisterer(Config{
		Service:                 "test",
		ToolDurationBuckets:     []float64{1, 2},
		UpstreamDurationBuckets: []float64{0.5},
	}, reg)

	m.RecordToolCall(ToolCallMetrics{ToolName: "list_comments", DurationSeconds: 1.5})

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "openarchieven_tool_call_duration_seconds" {
			continue
		}
		buckets := mf.GetMetric()[0].GetHistogram().GetBucket()
		require.Len(t, buckets, 2)
		assert.Equal(t, 1.0, buckets[0].GetUpperBound())
	}
}
