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

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/altairalabs/openarchieven-mcp/internal/httputil"
	"github.com/altairalabs/openarchieven-mcp/internal/openarchieven"
	"github.com/altairalabs/openarchieven-mcp/internal/tools"
	"github.com/altairalabs/openarchieven-mcp/internal/upstream"
)

func TestHealthHandler(t *testing.T) {
	readiness := &httputil.Readiness{}
	srv := httptest.NewServer(newHealthHandler(readiness))
	defer srv.Close()

	get := func(path string) int {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get(httputil.PathHealthz))
	assert.Equal(t, http.StatusServiceUnavailable, get(httputil.PathReadyz))
	readiness.Set(true)
	assert.Equal(t, http.StatusOK, get(httputil.PathReadyz))
	assert.Equal(t, http.StatusOK, get(metricsPath))
}

func TestMCPHandler_EndToEnd(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.0/comments/list.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 7, "name": "Piet", "comment": "Nice find"}]`))
	}))
	defer provider.Close()

	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	client := upstream.NewClient(upstream.Config{TracerProvider: tp}, logr.Discard())
	service := openarchieven.NewService(client, openarchieven.Config{BaseURL: provider.URL}, logr.Discard())
	server, err := newMCPServer(tools.NewRegistry(service, tools.Options{Transport: "http"}, logr.Discard()), nil)
	require.NoError(t, err)

	for _, stateless := range []bool{false, true} {
		spans.Reset()
		mcpSrv := httptest.NewServer(newMCPHandler(server, stateless, tp, nil))

		ctx := context.Background()
		mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
		session, err := mcpClient.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: mcpSrv.URL + mcpPath}, nil)
		require.NoError(t, err, "stateless=%v", stateless)

		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      tools.ToolListComments,
			Arguments: map[string]any{"number_show": 1},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)
		require.Len(t, res.Content, 1)

		var env map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &env))
		assert.Equal(t, "ok", env["status"])
		assert.Equal(t, float64(1), env["normalized"].(map[string]any)["count"])

		_ = session.Close()
		mcpSrv.CloseClientConnections()
		mcpSrv.Close()

		var serverSpans, clientSpans int
		for _, s := range spans.GetSpans() {
			switch {
			case s.Name == "mcp" && s.SpanKind == trace.SpanKindServer:
				serverSpans++
			case s.SpanKind == trace.SpanKindClient:
				clientSpans++
			}
		}
		assert.Positive(t, serverSpans, "stateless=%v: /mcp requests are traced", stateless)
		assert.Equal(t, 1, clientSpans, "stateless=%v: one upstream request", stateless)
	}
}

func TestMCPHandler_UnknownPath(t *testing.T) {
	server, err := newMCPServer(tools.NewRegistry(nil, tools.Options{}, logr.Discard()), nil)
	require.NoError(t, err)
	srv := httptest.NewServer(newMCPHandler(server, false, noop.NewTracerProvider(), nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/other")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
