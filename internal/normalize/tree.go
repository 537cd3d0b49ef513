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

// Package normalize reshapes raw Open Archieven JSON into stable, flat records.
//
// Every function here is pure and total: a missing or wrongly typed field
// degrades to null (or an empty list), never to an error. Inputs are the
// generic trees produced by encoding/json (map[string]any, []any, string,
// json.Number or float64, bool, nil).
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
)

// Object returns v as a JSON object, or nil if it is not one.
func Object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// List returns v as a JSON array, or nil if it is not one.
func List(v any) []any {
	l, _ := v.([]any)
	return l
}

// Get descends through nested objects along path. Any missing key or
// non-object on the way yields nil.
func Get(v any, path ...string) any {
	cur := v
	for _, key := range path {
		obj := Object(cur)
		if obj == nil {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

// GetOr is Get for a single key, returning def when v is an object without
// key. A key that is present with a null value yields nil, not def.
func GetOr(v any, key string, def any) any {
	obj := Object(v)
	if obj == nil {
		return def
	}
	val, ok := obj[key]
	if !ok {
		return def
	}
	return val
}

// Truthy reports whether v is a non-empty JSON value: null, false, "", zero,
// and empty arrays and objects are falsy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// Or returns a when it is truthy and b otherwise.
func Or(a, b any) any {
	if Truthy(a) {
		return a
	}
	return b
}

// Int returns v as an integer when it is an integral JSON number.
// Booleans and strings are not numbers.
func Int(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return int(i), true
		}
		return 0, false
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int(t), true
		}
		return 0, false
	case int:
		return t, true
	default:
		return 0, false
	}
}

// Objects returns the object elements of the array v, skipping anything else.
// The result is never nil so it serialises as [].
func Objects(v any) []map[string]any {
	list := List(v)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj := Object(item); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}
