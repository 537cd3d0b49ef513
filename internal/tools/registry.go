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

// Package tools binds the Open Archieven operations to an MCP server.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/altairalabs/openarchieven-mcp/internal/openarchieven"
	"github.com/altairalabs/openarchieven-mcp/internal/tracing"
	"github.com/altairalabs/openarchieven-mcp/pkg/logctx"
	"github.com/altairalabs/openarchieven-mcp/pkg/metrics"
)

// Options configures a Registry.
type Options struct {
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Tracing is optional; spans go to the global provider when nil.
	Tracing *tracing.Provider
	// Transport is added to every log line of an invocation.
	Transport string
}

// Registry registers the tool table on MCP servers and instruments every
// invocation with logging, tracing and metrics.
type Registry struct {
	service     *openarchieven.Service
	definitions []definition
	opts        Options
	log         logr.Logger
}

// NewRegistry creates a Registry serving the operations of service.
func NewRegistry(service *openarchieven.Service, opts Options, log logr.Logger) *Registry {
	if opts.Tracing == nil {
		// A disabled provider never fails.
		opts.Tracing, _ = tracing.NewProvider(context.Background(), tracing.Config{})
	}
	return &Registry{
		service:     service,
		definitions: definitions(),
		opts:        opts,
		log:         log.WithName("tools"),
	}
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for _, d := range r.definitions {
		names = append(names, d.name)
	}
	return names
}

// Register adds every tool to server.
func (r *Registry) Register(server *mcp.Server) error {
	for _, d := range r.definitions {
		tool, err := d.tool()
		if err != nil {
			return fmt.Errorf("tool %s: %w", d.name, err)
		}
		d.add(r, server, tool)
		r.log.V(1).Info("registered tool", "tool", d.name)
	}
	return nil
}

// invoke runs call inside the invocation context of one tool call.
func (r *Registry) invoke(ctx context.Context, req *mcp.CallToolRequest, name string, call func(context.Context) openarchieven.Envelope) openarchieven.Envelope {
	var sessionID string
	if req != nil && req.Session != nil {
		sessionID = req.Session.ID()
	}
	invocationID := logctx.NewInvocationID()
	ctx = logctx.WithLoggingContext(ctx, &logctx.LoggingFields{
		SessionID:    sessionID,
		InvocationID: invocationID,
		Tool:         name,
		Transport:    r.opts.Transport,
	})
	log := logctx.LoggerWithContext(r.log, ctx)

	ctx, span := r.opts.Tracing.StartToolSpan(ctx, name, sessionID, invocationID)
	defer span.End()

	log.V(1).Info("tool call started")
	start := time.Now()
	env := call(ctx)
	elapsed := time.Since(start)

	kind := string(env.Kind())
	tracing.AddToolResult(span, kind, elapsed.Milliseconds())
	r.opts.Metrics.RecordToolCall(metrics.ToolCallMetrics{
		ToolName:        name,
		DurationSeconds: elapsed.Seconds(),
		ErrorKind:       kind,
	})
	if env.IsError() {
		log.Info("tool call failed", "error", kind, "duration", elapsed)
	} else {
		log.V(1).Info("tool call completed", "duration", elapsed)
	}
	return env
}

// definition is one row of the tool table.
type definition struct {
	name        string
	title       string
	description string
	// defaults are published in the input schema and applied by the SDK.
	defaults map[string]any
	schema   func() (*jsonschema.Schema, error)
	add      func(r *Registry, server *mcp.Server, tool *mcp.Tool)
}

// define builds a table row for an operation taking arguments of type In.
func define[In any](name, title, description string, defaults map[string]any,
	op func(s *openarchieven.Service, ctx context.Context, in In) openarchieven.Envelope) definition {
	return definition{
		name:        name,
		title:       title,
		description: description,
		defaults:    defaults,
		schema: func() (*jsonschema.Schema, error) {
			return jsonschema.For[In](nil)
		},
		add: func(r *Registry, server *mcp.Server, tool *mcp.Tool) {
			mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
				env := r.invoke(ctx, req, name, func(ctx context.Context) openarchieven.Envelope {
					return op(r.service, ctx, in)
				})
				// The SDK serialises env into StructuredContent and a text block.
				return &mcp.CallToolResult{IsError: env.IsError()}, env, nil
			})
		},
	}
}

func (d definition) tool() (*mcp.Tool, error) {
	schema, err := d.schema()
	if err != nil {
		return nil, err
	}
	for prop, value := range d.defaults {
		ps, ok := schema.Properties[prop]
		if !ok {
			return nil, fmt.Errorf("default for unknown property %q", prop)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		ps.Default = raw
	}
	openWorld := true
	return &mcp.Tool{
		Name:        d.name,
		Title:       d.title,
		Description: d.description,
		InputSchema: schema,
		Annotations: &mcp.ToolAnnotations{
			Title:          d.title,
			ReadOnlyHint:   true,
			IdempotentHint: true,
			OpenWorldHint:  &openWorld,
		},
	}, nil
}
