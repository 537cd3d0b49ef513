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

package openarchieven

import (
	"encoding/json"
	"errors"

	"github.com/altairalabs/openarchieven-mcp/internal/upstream"
)

// ErrorKind is the closed set of error envelope kinds.
type ErrorKind string

// Validation failures, detected before any network call.
const (
	ErrMissingName         ErrorKind = "missing_name"
	ErrMissingParameters   ErrorKind = "missing_parameters"
	ErrInvalidYears        ErrorKind = "invalid_years"
	ErrInvalidYear         ErrorKind = "invalid_year"
	ErrMissingPlaceOrGGURI ErrorKind = "missing_place_or_gg_uri"
)

// Transport failures, mirrored from the upstream client.
const (
	ErrConnection  = ErrorKind(upstream.KindConnection)
	ErrHTTP        = ErrorKind(upstream.KindHTTP)
	ErrInvalidJSON = ErrorKind(upstream.KindInvalidJSON)
)

// Envelope statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope is the result of every operation: either ok with the raw
// provider payload and its normalized form, or an error with a kind and
// diagnostic details. It serialises to exactly one of the two shapes.
type Envelope struct {
	raw        any
	normalized any
	kind       ErrorKind
	details    map[string]any
}

// OK builds a success envelope.
func OK(raw, normalized any) Envelope {
	return Envelope{raw: raw, normalized: normalized}
}

// Fail builds an error envelope.
func Fail(kind ErrorKind, details map[string]any) Envelope {
	if details == nil {
		details = map[string]any{}
	}
	return Envelope{kind: kind, details: details}
}

func invalid(kind ErrorKind, message string) Envelope {
	return Fail(kind, map[string]any{"message": message})
}

// fromFetchError maps a fetch failure onto an error envelope. Anything that
// is not an *upstream.Error (such as a cancelled context) counts as a
// connection error.
func fromFetchError(err error) Envelope {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return Fail(ErrorKind(upErr.Kind), upErr.Details())
	}
	return Fail(ErrConnection, map[string]any{"message": err.Error()})
}

// IsError reports whether e is an error envelope.
func (e Envelope) IsError() bool {
	return e.kind != ""
}

// Status returns StatusOK or StatusError.
func (e Envelope) Status() string {
	if e.IsError() {
		return StatusError
	}
	return StatusOK
}

// Kind returns the error kind, empty for a success envelope.
func (e Envelope) Kind() ErrorKind {
	return e.kind
}

// Details returns the error details, nil for a success envelope.
func (e Envelope) Details() map[string]any {
	return e.details
}

// Raw returns the untouched provider payload of a success envelope.
func (e Envelope) Raw() any {
	return e.raw
}

// Normalized returns the normalized payload of a success envelope.
func (e Envelope) Normalized() any {
	return e.normalized
}

type okWire struct {
	Status     string `json:"status"`
	Raw        any    `json:"raw"`
	Normalized any    `json:"normalized"`
}

type errorWire struct {
	Status  string         `json:"status"`
	Error   ErrorKind      `json:"error"`
	Details map[string]any `json:"details"`
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.IsError() {
		return json.Marshal(errorWire{Status: StatusError, Error: e.kind, Details: e.details})
	}
	return json.Marshal(okWire{Status: StatusOK, Raw: e.raw, Normalized: e.normalized})
}
