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

// Package pagination drains an offset-paginated endpoint page by page.
package pagination

import (
	"context"

	"github.com/go-logr/logr"
)

// MaxPageSize is the largest page the provider serves; it is also the
// default when a caller asks for a non-positive or oversized page.
const MaxPageSize = 100

// Page is one fetched page.
type Page struct {
	// Raw is the page's untouched response document.
	Raw any
	// Items are the page's result entries.
	Items []any
	// Total is the provider-reported total, nil when the page carries none.
	Total *int
}

// PageFunc fetches up to size items starting at offset.
type PageFunc func(ctx context.Context, offset, size int) (Page, error)

// Result is the outcome of a complete FetchAll.
type Result struct {
	// Raw is the first page's response document.
	Raw any
	// Total is the first total reported by any page, nil if none was.
	Total *int
	// Items are the entries of all pages in order.
	Items []any
	// Pages is the number of pages fetched.
	Pages int
	// Truncated is set when the page cap stopped the loop early.
	Truncated bool
}

type options struct {
	maxPages int
	log      logr.Logger
}

// Option configures FetchAll.
type Option func(*options)

// WithMaxPages stops after n pages and marks the result truncated.
// Zero or negative means no cap.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// WithLogger logs each fetched page at V(1).
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// ClampPageSize returns size if it lies in (0, MaxPageSize], else MaxPageSize.
func ClampPageSize(size int) int {
	if size <= 0 || size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// FetchAll calls fetch repeatedly until a page comes back empty or the number
// of accumulated items reaches the first reported total.
//
// The offset of each request is the number of items received so far, so a
// short page does not skip entries. Pages are fetched strictly in sequence.
// The first failure aborts the loop; items from earlier pages are discarded.
// Cancellation of ctx is left to fetch, which reports it as its own error.
func FetchAll(ctx context.Context, fetch PageFunc, pageSize int, opts ...Option) (*Result, error) {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	pageSize = ClampPageSize(pageSize)

	res := &Result{Items: []any{}}
	offset := 0
	for {
		if o.maxPages > 0 && res.Pages >= o.maxPages {
			res.Truncated = true
			o.log.Info("page cap reached", "pages", res.Pages, "items", len(res.Items))
			break
		}
		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		res.Pages++
		if res.Pages == 1 {
			res.Raw = page.Raw
		}
		if res.Total == nil && page.Total != nil {
			total := *page.Total
			res.Total = &total
		}
		o.log.V(1).Info("fetched page", "offset", offset, "items", len(page.Items), "page", res.Pages)

		if len(page.Items) == 0 {
			break
		}
		res.Items = append(res.Items, page.Items...)
		offset += len(page.Items)
		if res.Total != nil && offset >= *res.Total {
			break
		}
	}
	return res, nil
}
