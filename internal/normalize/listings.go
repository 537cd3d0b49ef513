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

package normalize

// Birth is an entry of records/yearsago.json.
type Birth struct {
	ArchiveCode any  `json:"archive_code"`
	Archive     any  `json:"archive"`
	Identifier  any  `json:"identifier"`
	Name        any  `json:"name"`
	Place       any  `json:"place"`
	HasScan     bool `json:"has_scan"`
	URL         any  `json:"url"`
}

// CensusEntry is an entry of related/census.json.
type CensusEntry struct {
	Name       any `json:"name"`
	Year       any `json:"year"`
	Province   any `json:"province"`
	Population any `json:"population"`
	GGURI      any `json:"gg_uri"`
	Table      any `json:"table"`
}

// Comment is an entry of comments/list.json.
type Comment struct {
	ID         any `json:"id"`
	Identifier any `json:"identifier"`
	Archive    any `json:"archive"`
	AuthorName any `json:"author_name"`
	Comment    any `json:"comment"`
	Created    any `json:"created"`
}

// Births normalizes a records/yearsago.json document, which is a bare list.
func Births(raw any) []Birth {
	items := Objects(raw)
	births := make([]Birth, 0, len(items))
	for _, item := range items {
		births = append(births, Birth{
			ArchiveCode: item["archive_code"],
			Archive:     item["archive"],
			Identifier:  item["identifier"],
			Name:        item["name"],
			Place:       item["place"],
			HasScan:     Truthy(item["scan"]),
			URL:         item["url"],
		})
	}
	return births
}

// Census normalizes the census list of a related/census.json document.
func Census(raw any) []CensusEntry {
	items := Objects(Get(raw, "census"))
	entries := make([]CensusEntry, 0, len(items))
	for _, c := range items {
		entries = append(entries, CensusEntry{
			Name:       c["name"],
			Year:       c["year"],
			Province:   c["province"],
			Population: c["population"],
			GGURI:      c["gg_uri"],
			Table:      c["table"],
		})
	}
	return entries
}

// CensusTotals returns the per-province totals of a related/census.json
// document, or an empty object when absent.
func CensusTotals(raw any) any {
	return GetOr(raw, "totals", map[string]any{})
}

// Comments normalizes a comments/list.json document, which is a bare list.
func Comments(raw any) []Comment {
	items := Objects(raw)
	comments := make([]Comment, 0, len(items))
	for _, c := range items {
		comments = append(comments, Comment{
			ID:         c["id"],
			Identifier: c["identifier"],
			Archive:    c["archive"],
			AuthorName: c["name"],
			Comment:    c["comment"],
			Created:    c["created"],
		})
	}
	return comments
}
