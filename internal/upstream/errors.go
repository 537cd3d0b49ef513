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

package upstream

import (
	"fmt"
	"unicode/utf8"
)

// ErrorKind classifies a failed upstream request.
type ErrorKind string

const (
	// KindConnection means the request could not be completed (DNS, timeout, reset).
	KindConnection ErrorKind = "connection_error"
	// KindHTTP means the API answered with a non-2xx status.
	KindHTTP ErrorKind = "http_error"
	// KindInvalidJSON means a 2xx response body did not parse as JSON.
	KindInvalidJSON ErrorKind = "invalid_json"
)

// MaxBodyExcerpt caps the number of characters of a response body kept for diagnostics.
const MaxBodyExcerpt = 2000

// Error describes a failed upstream request with enough context to diagnose it.
type Error struct {
	Kind       ErrorKind
	URL        string
	Params     Params
	Message    string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: %s returned status %d", e.Kind, e.URL, e.StatusCode)
	case KindInvalidJSON:
		return fmt.Sprintf("%s: %s returned a body that is not JSON", e.Kind, e.URL)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.URL, e.Message)
	}
}

// Details returns the fields exposed to callers in an error envelope.
func (e *Error) Details() map[string]any {
	details := map[string]any{
		"url":    e.URL,
		"params": e.Params,
	}
	switch e.Kind {
	case KindHTTP:
		details["status_code"] = e.StatusCode
		details["body"] = e.Body
	case KindInvalidJSON:
		details["body"] = e.Body
	default:
		details["message"] = e.Message
	}
	return details
}

func connectionError(endpoint string, params Params, err error) *Error {
	return &Error{
		Kind:    KindConnection,
		URL:     endpoint,
		Params:  params,
		Message: err.Error(),
	}
}

// Excerpt returns at most MaxBodyExcerpt characters of body.
func Excerpt(body []byte) string {
	if utf8.RuneCount(body) <= MaxBodyExcerpt {
		return string(body)
	}
	return string([]rune(string(body))[:MaxBodyExcerpt])
}
