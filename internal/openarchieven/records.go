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
	"fmt"

	"github.com/altairalabs/openarchieven-mcp/internal/normalize"
	"github.com/altairalabs/openarchieven-mcp/internal/upstream"
)

// BirthsResult is the normalized payload of GetBirthsYearsAgo.
type BirthsResult struct {
	Years  int               `json:"years"`
	Count  int               `json:"count"`
	Births []normalize.Birth `json:"births"`
}

// CensusResult is the normalized payload of GetCensusData.
type CensusResult struct {
	Year             int                     `json:"year"`
	Entries          []normalize.CensusEntry `json:"entries"`
	TotalsByProvince any                     `json:"totals_by_province"`
}

// CommentsResult is the normalized payload of ListComments.
type CommentsResult struct {
	Count    int                 `json:"count"`
	Comments []normalize.Comment `json:"comments"`
}

// GetRecordDetails fetches one A2A record.
func (s *Service) GetRecordDetails(ctx context.Context, p RecordParams) Envelope {
	if p.Lang == "" {
		p.Lang = DefaultLang
	}
	if blank(p.Archive) || blank(p.Identifier) {
		return invalid(ErrMissingParameters, "Both 'archive' and 'identifier' are required.")
	}
	q := upstream.Params{
		"archive":    p.Archive,
		"identifier": p.Identifier,
		"lang":       p.Lang,
	}
	return s.call(ctx, endpointShow, q, func(raw any) any {
		return normalize.A2ARecord(raw)
	})
}

// GetBirthsYearsAgo lists records of people born the given number of years ago.
func (s *Service) GetBirthsYearsAgo(ctx context.Context, p BirthsParams) Envelope {
	if p.Years == nil || *p.Years <= 0 {
		return invalid(ErrInvalidYears, "'years' must be a positive integer.")
	}
	years := *p.Years
	q := upstream.Params{
		"years":       years,
		"number_show": intOr(p.NumberShow, DefaultNumberShow),
	}
	return s.call(ctx, endpointYearsAgo, q, func(raw any) any {
		births := normalize.Births(raw)
		return BirthsResult{Years: years, Count: len(births), Births: births}
	})
}

// GetCensusData returns census figures for a place. gg_uri wins over place
// when both are given. Either counts as given when non-empty, whitespace
// included.
func (s *Service) GetCensusData(ctx context.Context, p CensusParams) Envelope {
	if p.Year == nil || *p.Year < MinCensusYear || *p.Year > MaxCensusYear {
		return invalid(ErrInvalidYear, fmt.Sprintf("Year must be between %d and %d (inclusive).", MinCensusYear, MaxCensusYear))
	}
	if p.Place == "" && p.GGURI == "" {
		return invalid(ErrMissingPlaceOrGGURI, "Either 'place' or 'gg_uri' is required.")
	}
	year := *p.Year
	q := upstream.Params{
		"year":     year,
		"richness": intOr(p.Richness, DefaultRichness),
	}
	if p.GGURI != "" {
		q.Set("gg_uri", p.GGURI)
	} else {
		q.Set("place", p.Place)
	}
	q.SetString("province", p.Province)
	return s.call(ctx, endpointCensus, q, func(raw any) any {
		return CensusResult{
			Year:             year,
			Entries:          normalize.Census(raw),
			TotalsByProvince: normalize.CensusTotals(raw),
		}
	})
}

// ListComments lists recent user comments on records.
func (s *Service) ListComments(ctx context.Context, p CommentsParams) Envelope {
	q := upstream.Params{"number_show": intOr(p.NumberShow, DefaultNumberShow)}
	q.SetString("archive", p.Archive)
	q.SetString("since", p.Since)
	return s.call(ctx, endpointComments, q, func(raw any) any {
		comments := normalize.Comments(raw)
		return CommentsResult{Count: len(comments), Comments: comments}
	})
}
