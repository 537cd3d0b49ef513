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

import "github.com/altairalabs/openarchieven-mcp/internal/upstream"

// Argument defaults. An omitted optional argument selects the default; an
// explicit zero is sent as given.
const (
	DefaultNumberShow = 10
	DefaultSort       = 1
	DefaultLang       = "en"
	DefaultRichness   = 1
)

// Census years the provider covers.
const (
	MinCensusYear = 1770
	MaxCensusYear = 1980
)

// SearchParams are the arguments of SearchPeople.
type SearchParams struct {
	Name         string `json:"name,omitempty" jsonschema:"Person name to search for. Accepts the provider query syntax, e.g. 'Jan Berg 1850-1860' or 'Jan Berg & Maria Jansen'."`
	ArchiveCode  string `json:"archive_code,omitempty" jsonschema:"Restrict results to one archive code"`
	NumberShow   *int   `json:"number_show,omitempty" jsonschema:"Number of results to return"`
	SourceType   string `json:"sourcetype,omitempty" jsonschema:"Restrict results to a source type"`
	EventPlace   string `json:"eventplace,omitempty" jsonschema:"Restrict results to an event place"`
	RelationType string `json:"relationtype,omitempty" jsonschema:"Restrict results to a relation type"`
	CountryCode  string `json:"country_code,omitempty" jsonschema:"Restrict results to a country code"`
	Sort         *int   `json:"sort,omitempty" jsonschema:"Sort order as defined by the provider"`
	Lang         string `json:"lang,omitempty" jsonschema:"Response language"`
	Start        int    `json:"start,omitempty" jsonschema:"Offset of the first result"`
}

func (p SearchParams) withDefaults() SearchParams {
	if p.Lang == "" {
		p.Lang = DefaultLang
	}
	return p
}

func (p SearchParams) query() upstream.Params {
	q := searchQuery(p.Name, intOr(p.Sort, DefaultSort), p.Lang, searchFilters{
		archiveCode:  p.ArchiveCode,
		sourceType:   p.SourceType,
		eventPlace:   p.EventPlace,
		relationType: p.RelationType,
		countryCode:  p.CountryCode,
	})
	q.Set("number_show", intOr(p.NumberShow, DefaultNumberShow))
	q.Set("start", p.Start)
	return q
}

// SearchAllParams are the arguments of SearchPeopleAll.
type SearchAllParams struct {
	Name         string `json:"name,omitempty" jsonschema:"Person name to search for. Accepts the provider query syntax."`
	ArchiveCode  string `json:"archive_code,omitempty" jsonschema:"Restrict results to one archive code"`
	SourceType   string `json:"sourcetype,omitempty" jsonschema:"Restrict results to a source type"`
	EventPlace   string `json:"eventplace,omitempty" jsonschema:"Restrict results to an event place"`
	RelationType string `json:"relationtype,omitempty" jsonschema:"Restrict results to a relation type"`
	CountryCode  string `json:"country_code,omitempty" jsonschema:"Restrict results to a country code"`
	Sort         *int   `json:"sort,omitempty" jsonschema:"Sort order as defined by the provider"`
	Lang         string `json:"lang,omitempty" jsonschema:"Response language"`
	PageSize     int    `json:"page_size,omitempty" jsonschema:"Results per request, at most 100"`
}

func (p SearchAllParams) withDefaults() SearchAllParams {
	if p.Lang == "" {
		p.Lang = DefaultLang
	}
	return p
}

func (p SearchAllParams) query() upstream.Params {
	return searchQuery(p.Name, intOr(p.Sort, DefaultSort), p.Lang, searchFilters{
		archiveCode:  p.ArchiveCode,
		sourceType:   p.SourceType,
		eventPlace:   p.EventPlace,
		relationType: p.RelationType,
		countryCode:  p.CountryCode,
	})
}

type searchFilters struct {
	archiveCode  string
	sourceType   string
	eventPlace   string
	relationType string
	countryCode  string
}

func searchQuery(name string, sort int, lang string, f searchFilters) upstream.Params {
	q := upstream.Params{
		"name": name,
		"sort": sort,
		"lang": lang,
	}
	q.SetString("archive_code", f.archiveCode)
	q.SetString("sourcetype", f.sourceType)
	q.SetString("eventplace", f.eventPlace)
	q.SetString("relationtype", f.relationType)
	q.SetString("country_code", f.countryCode)
	return q
}

// MatchParams are the arguments of MatchPerson.
type MatchParams struct {
	Name      string `json:"name,omitempty" jsonschema:"Full name of the person"`
	Birthyear *int   `json:"birthyear,omitempty" jsonschema:"Year of birth"`
	Lang      string `json:"lang,omitempty" jsonschema:"Response language"`
}

// RecordParams are the arguments of GetRecordDetails.
type RecordParams struct {
	Archive    string `json:"archive,omitempty" jsonschema:"Archive code of the record"`
	Identifier string `json:"identifier,omitempty" jsonschema:"Record identifier (GUID)"`
	Lang       string `json:"lang,omitempty" jsonschema:"Response language"`
}

// BirthsParams are the arguments of GetBirthsYearsAgo.
type BirthsParams struct {
	Years      *int `json:"years,omitempty" jsonschema:"How many years ago the births took place"`
	NumberShow *int `json:"number_show,omitempty" jsonschema:"Number of results to return"`
}

// CensusParams are the arguments of GetCensusData.
type CensusParams struct {
	Year     *int   `json:"year,omitempty" jsonschema:"Census year between 1770 and 1980"`
	Place    string `json:"place,omitempty" jsonschema:"Place name; required unless gg_uri is given"`
	GGURI    string `json:"gg_uri,omitempty" jsonschema:"Gemeentegeschiedenis URI of the place; takes precedence over place"`
	Province string `json:"province,omitempty" jsonschema:"Province to narrow the place lookup"`
	Richness *int   `json:"richness,omitempty" jsonschema:"Level of detail of the census answer"`
}

// CommentsParams are the arguments of ListComments.
type CommentsParams struct {
	Archive    string `json:"archive,omitempty" jsonschema:"Restrict comments to one archive code"`
	NumberShow *int   `json:"number_show,omitempty" jsonschema:"Number of comments to return"`
	Since      string `json:"since,omitempty" jsonschema:"Only comments created since this date (YYYY-MM-DD)"`
}

// intOr returns *v, or def when v is nil.
func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
