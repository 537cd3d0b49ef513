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
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/altairalabs/openarchieven-mcp/internal/config"
	"github.com/altairalabs/openarchieven-mcp/internal/httputil"
	"github.com/altairalabs/openarchieven-mcp/internal/tools"
)

const (
	mcpPath     = "/mcp"
	metricsPath = "/metrics"
)

const instructions = `Tools for the Open Archieven genealogical records API (openarchieven.nl).
Every tool returns {"status":"ok","raw":...,"normalized":...} or
{"status":"error","error":<kind>,"details":{...}}. Start with search_people or
match_person, then use get_record_details with the archive code and identifier
of a hit.`

// newMCPServer creates the MCP server with every tool registered.
func newMCPServer(registry *tools.Registry, logger *slog.Logger) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "openarchieven",
		Title:   "Open Archieven",
		Version: config.Version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
		Logger:       logger,
	})
	if err := registry.Register(server); err != nil {
		return nil, err
	}
	return server, nil
}

// newMCPHandler serves the Streamable HTTP transport on mcpPath.
func newMCPHandler(server *mcp.Server, stateless bool, tp trace.TracerProvider, logger *slog.Logger) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: stateless,
		Logger:    logger,
	})

	mux := http.NewServeMux()
	mux.Handle(mcpPath, otelhttp.NewHandler(streamable, "mcp", otelhttp.WithTracerProvider(tp)))
	return mux
}

// newHealthHandler serves probes and Prometheus metrics.
func newHealthHandler(readiness *httputil.Readiness) http.Handler {
	mux := httputil.NewProbeMux(readiness)
	mux.Handle(metricsPath, promhttp.Handler())
	return mux
}
