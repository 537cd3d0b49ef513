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

package tools

import (
	"github.com/altairalabs/openarchieven-mcp/internal/openarchieven"
	"github.com/altairalabs/openarchieven-mcp/internal/pagination"
)

// Tool names.
const (
	ToolSearchPeople      = "search_people"
	ToolSearchPeopleAll   = "search_people_all"
	ToolMatchPerson       = "match_person"
	ToolGetRecordDetails  = "get_record_details"
	ToolGetBirthsYearsAgo = "get_births_years_ago"
	ToolGetCensusData     = "get_census_data"
	ToolListComments      = "list_comments"
)

// definitions is the tool table.
func definitions() []definition {
	return []definition{
		define(ToolSearchPeople, "Search people",
			"Search for persons and events across Open Archieven. Returns one page of results "+
				"with the total number found. Use start and number_show to page.",
			map[string]any{
				"number_show": openarchieven.DefaultNumberShow,
				"sort":        openarchieven.DefaultSort,
				"lang":        openarchieven.DefaultLang,
				"start":       0,
			},
			(*openarchieven.Service).SearchPeople),

		define(ToolSearchPeopleAll, "Search people (all pages)",
			"Fetch all pages of search results for a person query and return them as one list. "+
				"raw holds the first page.",
			map[string]any{
				"sort":      openarchieven.DefaultSort,
				"lang":      openarchieven.DefaultLang,
				"page_size": pagination.MaxPageSize,
			},
			(*openarchieven.Service).SearchPeopleAll),

		define(ToolMatchPerson, "Match person",
			"Exact match search by name and birth year.",
			map[string]any{
				"lang": openarchieven.DefaultLang,
			},
			(*openarchieven.Service).MatchPerson),

		define(ToolGetRecordDetails, "Get record details",
			"Get the full genealogical record (A2A) by archive code and identifier, "+
				"with persons, event and source summarised.",
			map[string]any{
				"lang": openarchieven.DefaultLang,
			},
			(*openarchieven.Service).GetRecordDetails),

		define(ToolGetBirthsYearsAgo, "Births N years ago",
			"List births that occurred the given number of years ago, counted from today.",
			map[string]any{
				"number_show": openarchieven.DefaultNumberShow,
			},
			(*openarchieven.Service).GetBirthsYearsAgo),

		define(ToolGetCensusData, "Census data",
			"Get Dutch census data for a place or municipality nearest to a year between 1770 and 1980. "+
				"Give either place or gg_uri.",
			map[string]any{
				"richness": openarchieven.DefaultRichness,
			},
			(*openarchieven.Service).GetCensusData),

		define(ToolListComments, "List comments",
			"List approved comments made on records, optionally for one archive or since a date.",
			map[string]any{
				"number_show": openarchieven.DefaultNumberShow,
			},
			(*openarchieven.Service).ListComments),
	}
}
