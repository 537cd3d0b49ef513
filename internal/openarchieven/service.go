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

// Package openarchieven exposes the Open Archieven operations served as MCP
// tools. Every operation validates its arguments, calls the provider and
// returns an Envelope; no error ever escapes as a Go error.
package openarchieven

import (
	"context"
	"strings"

	"github.com/go-logr/logr"

	"github.com/altairalabs/openarchieven-mcp/internal/upstream"
	"github.com/altairalabs/openarchieven-mcp/pkg/logctx"
	"github.com/altairalabs/openarchieven-mcp/pkg/metrics"
)

// DefaultBaseURL is the public Open Archieven API.
const DefaultBaseURL = "https://api.openarchieven.nl"

// Fetcher performs one GET against the provider and returns the decoded
// JSON document. *upstream.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params upstream.Params) (any, error)
}

type endpoint struct {
	version string
	path    string
}

var (
	endpointSearch   = endpoint{"1.1", "records/search.json"}
	endpointMatch    = endpoint{"1.0", "records/match.json"}
	endpointShow     = endpoint{"1.1", "records/show.json"}
	endpointYearsAgo = endpoint{"1.1", "records/yearsago.json"}
	endpointCensus   = endpoint{"1.0", "related/census.json"}
	endpointComments = endpoint{"1.0", "comments/list.json"}
)

// Config configures a Service.
type Config struct {
	// BaseURL is the API root, DefaultBaseURL when empty.
	BaseURL string
	// MaxPages caps SearchPeopleAll. Zero means no cap.
	MaxPages int
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Service implements the seven Open Archieven operations.
type Service struct {
	fetcher  Fetcher
	baseURL  string
	maxPages int
	metrics  *metrics.Metrics
	log      logr.Logger
}

// NewService creates a Service that issues requests through fetcher.
func NewService(fetcher Fetcher, config Config, log logr.Logger) *Service {
	base := strings.TrimRight(config.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Service{
		fetcher:  fetcher,
		baseURL:  base,
		maxPages: config.MaxPages,
		metrics:  config.Metrics,
		log:      log.WithName("openarchieven"),
	}
}

func (s *Service) url(e endpoint) string {
	return s.baseURL + "/" + e.version + "/" + e.path
}

func (s *Service) logger(ctx context.Context) logr.Logger {
	return logctx.LoggerWithContext(s.log, ctx)
}

// call fetches e and wraps the document with normalize on success.
func (s *Service) call(ctx context.Context, e endpoint, params upstream.Params, normalize func(raw any) any) Envelope {
	raw, err := s.fetcher.Fetch(ctx, s.url(e), params)
	if err != nil {
		s.logger(ctx).V(1).Info("operation failed", "endpoint", e.path, "error", err.Error())
		return fromFetchError(err)
	}
	return OK(raw, normalize(raw))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
