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

// Package httputil provides shared HTTP constants and helpers.
package httputil

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Common HTTP header names and content types.
const (
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderUserAgent   = "User-Agent"
	ContentTypeJSON   = "application/json"
)

// Probe paths served next to /metrics.
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
)

// WriteJSON serialises v as JSON and writes it to w with the given status code.
// The Content-Type header is set to application/json.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// Readiness is a flag flipped once the server accepts tool calls and cleared
// when it starts shutting down. The zero value is not ready.
type Readiness struct {
	ready atomic.Bool
}

// Set marks the server ready or not ready.
func (r *Readiness) Set(ready bool) {
	r.ready.Store(ready)
}

// Ready reports the current state.
func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// NewProbeMux returns a mux serving liveness and readiness probes.
// Liveness always succeeds; readiness follows r.
func NewProbeMux(r *Readiness) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(PathHealthz, func(w http.ResponseWriter, _ *http.Request) {
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc(PathReadyz, func(w http.ResponseWriter, _ *http.Request) {
		if !r.Ready() {
			_ = WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}
