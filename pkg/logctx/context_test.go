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

package logctx

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/google/uuid"
)

func TestWithSessionID(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-123")

	if got := SessionID(ctx); got != "sess-123" {
		t.Errorf("SessionID() = %q, want %q", got, "sess-123")
	}
}

func TestWithInvocationID(t *testing.T) {
	ctx := WithInvocationID(context.Background(), "inv-456")

	if got := InvocationID(ctx); got != "inv-456" {
		t.Errorf("InvocationID() = %q, want %q", got, "inv-456")
	}
}

func TestWithTool(t *testing.T) {
	ctx := WithTool(context.Background(), "search_people")

	if got := Tool(ctx); got != "search_people" {
		t.Errorf("Tool() = %q, want %q", got, "search_people")
	}
}

func TestWithTransport(t *testing.T) {
	ctx := WithTransport(context.Background(), "stdio")

	fields := ExtractLoggingFields(ctx)
	if fields.Transport != "stdio" {
		t.Errorf("Transport = %q, want %q", fields.Transport, "stdio")
	}
}

func TestNewInvocationID(t *testing.T) {
	a, b := NewInvocationID(), NewInvocationID()
	if a == b {
		t.Errorf("NewInvocationID() returned %q twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("NewInvocationID() = %q is not a UUID: %v", a, err)
	}
}

func TestWithLoggingContext(t *testing.T) {
	ctx := WithLoggingContext(context.Background(), &LoggingFields{
		SessionID:    "sess",
		InvocationID: "inv",
		Tool:         "match_person",
	})

	got := ExtractLoggingFields(ctx)
	want := LoggingFields{SessionID: "sess", InvocationID: "inv", Tool: "match_person"}
	if got != want {
		t.Errorf("ExtractLoggingFields() = %+v, want %+v", got, want)
	}
}

func TestWithLoggingContext_Nil(t *testing.T) {
	ctx := context.Background()
	if got := WithLoggingContext(ctx, nil); got != ctx {
		t.Error("WithLoggingContext(nil) should return the original context")
	}
}

func TestExtractLoggingFields_Empty(t *testing.T) {
	if got := ExtractLoggingFields(context.Background()); got != (LoggingFields{}) {
		t.Errorf("ExtractLoggingFields() = %+v, want empty", got)
	}
}

func TestExtractLoggingFields_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContextKeySessionID, 42)

	if got := SessionID(ctx); got != "" {
		t.Errorf("SessionID() = %q, want empty for non-string value", got)
	}
}

func TestLogrValues(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess")
	ctx = WithTool(ctx, "list_comments")
	ctx = WithInvocationID(ctx, "")

	values := LogrValues(ctx)
	want := []interface{}{"session_id", "sess", "tool", "list_comments"}
	if len(values) != len(want) {
		t.Fatalf("LogrValues() = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("LogrValues()[%d] = %v, want %v", i, values[i], want[i])
		}
	}
}

func TestLoggerWithContext(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	ctx := WithInvocationID(context.Background(), "inv-1")
	LoggerWithContext(log, ctx).Info("hello")

	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(lines))
	}
	if want := `"invocation_id"="inv-1"`; !strings.Contains(lines[0], want) {
		t.Errorf("log line %q does not contain %q", lines[0], want)
	}
}

func TestLoggerWithContext_NoValues(t *testing.T) {
	log := logr.Discard()
	if got := LoggerWithContext(log, context.Background()); got != log {
		t.Error("LoggerWithContext() should return the original logger when the context is empty")
	}
}
