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

// Command openarchieven-mcp serves the Open Archieven genealogy API as MCP
// tools over Streamable HTTP or stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/zapr"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/altairalabs/openarchieven-mcp/internal/config"
	"github.com/altairalabs/openarchieven-mcp/internal/httputil"
	"github.com/altairalabs/openarchieven-mcp/internal/openarchieven"
	"github.com/altairalabs/openarchieven-mcp/internal/tools"
	"github.com/altairalabs/openarchieven-mcp/internal/tracing"
	"github.com/altairalabs/openarchieven-mcp/internal/upstream"
	"github.com/altairalabs/openarchieven-mcp/pkg/logging"
	"github.com/altairalabs/openarchieven-mcp/pkg/metrics"
)

const (
	serviceName     = "openarchieven-mcp"
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Create logger
	zapLog, err := logging.NewZapLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLog.Sync() }()
	log := zapr.NewLogger(zapLog)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error(err, "failed to load configuration")
		os.Exit(1)
	}

	log.Info("starting server",
		"version", config.Version,
		"transport", cfg.Transport,
		"listenAddr", cfg.ListenAddr,
		"healthAddr", cfg.HealthAddr,
		"apiBaseURL", cfg.BaseURL,
		"maxPages", cfg.MaxPages,
		"tracing", cfg.TracingEnabled)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracingProvider, err := tracing.NewProvider(ctx, tracing.Config{
		Enabled:        cfg.TracingEnabled,
		Endpoint:       cfg.TracingEndpoint,
		ServiceName:    serviceName,
		ServiceVersion: config.Version,
		SampleRate:     cfg.TracingSampleRate,
		Insecure:       cfg.TracingInsecure,
	})
	if err != nil {
		log.Error(err, "failed to initialize tracing")
		os.Exit(1)
	}

	m := metrics.NewMetrics(metrics.Config{Service: serviceName})

	client := upstream.NewClient(upstream.Config{
		Timeout:           cfg.HTTPTimeout,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
		TracerProvider:    tracingProvider.TracerProvider(),
		Metrics:           m,
	}, log)
	service := openarchieven.NewService(client, openarchieven.Config{
		BaseURL:  cfg.BaseURL,
		MaxPages: cfg.MaxPages,
		Metrics:  m,
	}, log)
	registry := tools.NewRegistry(service, tools.Options{
		Metrics:   m,
		Tracing:   tracingProvider,
		Transport: cfg.Transport,
	}, log)

	server, err := newMCPServer(registry, logging.SlogFromZap(zapLog))
	if err != nil {
		log.Error(err, "failed to register tools")
		os.Exit(1)
	}

	// Health, readiness and metrics
	readiness := &httputil.Readiness{}
	healthServer := &http.Server{
		Addr:              cfg.HealthAddr,
		Handler:           newHealthHandler(readiness),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("health server starting", "addr", cfg.HealthAddr)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "health server error")
		}
	}()

	var mcpServer *http.Server
	switch cfg.Transport {
	case config.TransportStdio:
		readiness.Set(true)
		log.Info("serving MCP over stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			log.Error(err, "stdio transport error")
		}
	default:
		mcpServer = &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           newMCPHandler(server, cfg.Stateless, tracingProvider.TracerProvider(), logging.SlogFromZap(zapLog)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("MCP server starting", "addr", cfg.ListenAddr, "path", mcpPath, "stateless", cfg.Stateless)
			if err := mcpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(err, "MCP server error")
				stop()
			}
		}()
		readiness.Set(true)
		<-ctx.Done()
	}

	log.Info("shutting down...")
	readiness.Set(false)

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if mcpServer != nil {
		if err := mcpServer.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "failed to shutdown MCP server")
		}
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "failed to shutdown health server")
	}
	if err := tracingProvider.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "failed to shutdown tracing")
	}

	log.Info("shutdown complete")
}
