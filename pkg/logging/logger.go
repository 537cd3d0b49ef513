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

// Package logging provides logger initialization for the server binary.
//
// All output goes to stderr, which keeps stdout free for the stdio MCP
// transport.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel names the environment variable that selects the log level.
const EnvLogLevel = "LOG_LEVEL"

// traceLevel enables logr V(2) output through zapr.
const traceLevel = zapcore.Level(-2)

// NewLogger creates a logr.Logger backed by Zap.
// It reads LOG_LEVEL: "trace" enables V(2), "debug" enables V(1) with a
// development encoder, "warn" and "error" raise the threshold, and anything
// else selects the production config at info level.
// Returns the logger and a sync function the caller should defer.
func NewLogger() (logr.Logger, func(), error) {
	zapLog, err := NewZapLogger()
	if err != nil {
		return logr.Logger{}, nil, err
	}
	sync := func() { _ = zapLog.Sync() }
	return zapr.NewLogger(zapLog), sync, nil
}

// NewZapLogger creates a *zap.Logger configured via the LOG_LEVEL env var.
// Use this when you need both a logr.Logger (via zapr.NewLogger) and an
// *slog.Logger (via SlogFromZap) backed by the same Zap core.
func NewZapLogger() (*zap.Logger, error) {
	return newZapLogger(os.Getenv(EnvLogLevel))
}

// SlogFromZap creates an *slog.Logger that writes directly to the Zap core.
// The MCP SDK logs through slog; this keeps its output in the same JSON
// stream as everything else.
func SlogFromZap(z *zap.Logger) *slog.Logger {
	return slog.New(zapslog.NewHandler(z.Core(), zapslog.WithCaller(true)))
}

func newZapLogger(level string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return developmentLogger(traceLevel)
	case "debug":
		return developmentLogger(zapcore.DebugLevel)
	case "warn", "warning":
		return productionLogger(zapcore.WarnLevel)
	case "error":
		return productionLogger(zapcore.ErrorLevel)
	default:
		return productionLogger(zapcore.InfoLevel)
	}
}

func developmentLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return build(cfg)
}

func productionLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return build(cfg)
}

func build(cfg zap.Config) (*zap.Logger, error) {
	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return z, nil
}
