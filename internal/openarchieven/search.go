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
	"context"

	"github.com/altairalabs/openarchieven-mcp/internal/normalize"
	"github.com/altairalabs/openarchieven-mcp/internal/pagination"
	"github.com/altairalabs/openarchieven-mcp/internal/upstream"
)

const msgMissingName = "Parameter 'name' is required."

// SearchResult is the normalized payload of the search operations.
type SearchResult struct {
	Query      any                   `json:"query"`
	TotalFound any                   `json:"total_found"`
	People     []normalize.SearchHit `json:"people"`
	Truncated  bool                  `json:"truncated,omitempty"`
}

// MatchResult is the normalized payload of MatchPerson.
type MatchResult struct {
	Query      any               `json:"query"`
	TotalFound any               `json:"total_found"`
	Matches    []normalize.Match `json:"matches"`
}

// SearchPeople returns one page of person search results.
func (s *Service) SearchPeople(ctx context.Context, p SearchParams) Envelope {
	p = p.withDefaults()
	if blank(p.Name) {
		return invalid(ErrMissingName, msgMissingName)
	}
	return s.call(ctx, endpointSearch, p.query(), func(raw any) any {
		return SearchResult{
			Query:      normalize.Query(raw),
			TotalFound: normalize.NumberFound(raw),
			People:     normalize.SearchDocs(normalize.Docs(raw)),
		}
	})
}

// SearchPeopleAll pages through every search result and returns them as one
// envelope. raw is the first page's document.
func (s *Service) SearchPeopleAll(ctx context.Context, p SearchAllParams) Envelope {
	p = p.withDefaults()
	pageSize := pagination.ClampPageSize(p.PageSize)
	if blank(p.Name) {
		return invalid(ErrMissingName, msgMissingName)
	}

	log := s.logger(ctx)
	base := p.query()
	url := s.url(endpointSearch)
	fetch := func(ctx context.Context, offset, size int) (pagination.Page, error) {
		q := base.Clone()
		q.Set("number_show", size)
		q.Set("start", offset)
		raw, err := s.fetcher.Fetch(ctx, url, q)
		if err != nil {
			return pagination.Page{}, err
		}
		page := pagination.Page{Raw: raw, Items: normalize.Docs(raw)}
		if total, ok := normalize.Int(normalize.NumberFound(raw)); ok {
			page.Total = &total
		}
		return page, nil
	}

	res, err := pagination.FetchAll(ctx, fetch, pageSize,
		pagination.WithMaxPages(s.maxPages),
		pagination.WithLogger(log))
	if err != nil {
		log.V(1).Info("search_all failed", "error", err.Error())
		return fromFetchError(err)
	}
	s.metrics.RecordPages(res.Pages)

	var total any = len(res.Items)
	if res.Total != nil {
		total = *res.Total
	}
	return OK(res.Raw, SearchResult{
		Query:      normalize.Query(res.Raw),
		TotalFound: total,
		People:     normalize.SearchDocs(res.Items),
		Truncated:  res.Truncated,
	})
}

// MatchPerson looks for records matching a person's name and birth year.
func (s *Service) MatchPerson(ctx context.Context, p MatchParams) Envelope {
	if p.Lang == "" {
		p.Lang = DefaultLang
	}
	if blank(p.Name) {
		return invalid(ErrMissingName, msgMissingName)
	}
	if p.Birthyear == nil {
		return invalid(ErrMissingParameters, "Parameter 'birthyear' is required.")
	}
	q := upstream.Params{
		"name":      p.Name,
		"birthyear": *p.Birthyear,
		"lang":      p.Lang,
	}
	return s.call(ctx, endpointMatch, q, func(raw any) any {
		return MatchResult{
			Query:      normalize.Query(raw),
			TotalFound: normalize.NumberFound(raw),
			Matches:    normalize.MatchDocs(normalize.Docs(raw)),
		}
	})
}
