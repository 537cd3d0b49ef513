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
	"net/url"
	"strconv"
)

// Params is a flat map of query parameter names to scalar values.
type Params map[string]any

// Set stores value under key.
func (p Params) Set(key string, value any) {
	p[key] = value
}

// SetString stores value under key only when it is non-empty.
func (p Params) SetString(key, value string) {
	if value != "" {
		p[key] = value
	}
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Values encodes p as URL query values.
func (p Params) Values() url.Values {
	q := make(url.Values, len(p))
	for k, v := range p {
		q.Set(k, formatValue(v))
	}
	return q
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
