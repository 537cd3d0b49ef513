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

// Package logctx carries logging fields through context.Context so that every
// log line of a tool invocation can be correlated.
package logctx

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// Context keys for common logging fields.
const (
	// ContextKeySessionID identifies the MCP session.
	ContextKeySessionID contextKey = "session_id"

	// ContextKeyInvocationID identifies a single tool invocation.
	ContextKeyInvocationID contextKey = "invocation_id"

	// ContextKeyTool identifies the tool being called.
	ContextKeyTool contextKey = "tool"

	// ContextKeyTransport identifies the MCP transport ("http" or "stdio").
	ContextKeyTransport contextKey = "transport"
)

// allContextKeys lists all context keys that should be extracted for logging.
var allContextKeys = []contextKey{
	ContextKeySessionID,
	ContextKeyInvocationID,
	ContextKeyTool,
	ContextKeyTransport,
}

// WithSessionID returns a new context with the session ID set.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// WithInvocationID returns a new context with the invocation ID set.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	return context.WithValue(ctx, ContextKeyInvocationID, invocationID)
}

// WithTool returns a new context with the tool name set.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, ContextKeyTool, tool)
}

// WithTransport returns a new context with the transport name set.
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, ContextKeyTransport, transport)
}

// NewInvocationID returns a fresh random invocation ID.
func NewInvocationID() string {
	return uuid.NewString()
}

// LoggingFields holds all standard logging context fields.
type LoggingFields struct {
	SessionID    string
	InvocationID string
	Tool         string
	Transport    string
}

// WithLoggingContext returns a new context with multiple logging fields set at once.
// Only non-empty values are set.
func WithLoggingContext(ctx context.Context, fields *LoggingFields) context.Context {
	if fields == nil {
		return ctx
	}
	if fields.SessionID != "" {
		ctx = WithSessionID(ctx, fields.SessionID)
	}
	if fields.InvocationID != "" {
		ctx = WithInvocationID(ctx, fields.InvocationID)
	}
	if fields.Tool != "" {
		ctx = WithTool(ctx, fields.Tool)
	}
	if fields.Transport != "" {
		ctx = WithTransport(ctx, fields.Transport)
	}
	return ctx
}

// ExtractLoggingFields extracts all logging fields from a context.
func ExtractLoggingFields(ctx context.Context) LoggingFields {
	return LoggingFields{
		SessionID:    stringValue(ctx, ContextKeySessionID),
		InvocationID: stringValue(ctx, ContextKeyInvocationID),
		Tool:         stringValue(ctx, ContextKeyTool),
		Transport:    stringValue(ctx, ContextKeyTransport),
	}
}

// LogrValues extracts context values and returns them as key-value pairs
// suitable for use with logr.Logger.WithValues().
// Only non-empty values are included.
func LogrValues(ctx context.Context) []interface{} {
	var values []interface{}
	for _, key := range allContextKeys {
		if s := stringValue(ctx, key); s != "" {
			values = append(values, string(key), s)
		}
	}
	return values
}

// LoggerWithContext returns a logger enriched with all context values.
func LoggerWithContext(log logr.Logger, ctx context.Context) logr.Logger {
	values := LogrValues(ctx)
	if len(values) == 0 {
		return log
	}
	return log.WithValues(values...)
}

// SessionID extracts the session ID from the context.
func SessionID(ctx context.Context) string {
	return stringValue(ctx, ContextKeySessionID)
}

// InvocationID extracts the invocation ID from the context.
func InvocationID(ctx context.Context) string {
	return stringValue(ctx, ContextKeyInvocationID)
}

// Tool extracts the tool name from the context.
func Tool(ctx context.Context) string {
	return stringValue(ctx, ContextKeyTool)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
