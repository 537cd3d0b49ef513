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

// SearchHit is a person/event hit from records/search.json.
type SearchHit struct {
	PID          any `json:"pid"`
	Identifier   any `json:"identifier"`
	Name         any `json:"name"`
	RelationType any `json:"relation_type"`
	EventType    any `json:"event_type"`
	EventYear    any `json:"event_year"`
	EventPlace   any `json:"event_place"`
	ArchiveCode  any `json:"archive_code"`
	Archive      any `json:"archive"`
	SourceType   any `json:"source_type"`
	URL          any `json:"url"`
}

// Match is an exact-match hit from records/match.json.
type Match struct {
	URI         any `json:"uri"`
	ArchiveCode any `json:"archive_code"`
	Archive     any `json:"archive"`
	EventType   any `json:"event_type"`
	EventPlace  any `json:"event_place"`
	SourceType  any `json:"source_type"`
}

// SearchDocs normalizes a list of search docs.
func SearchDocs(docs []any) []SearchHit {
	hits := make([]SearchHit, 0, len(docs))
	for _, d := range docs {
		doc := Object(d)
		if doc == nil {
			continue
		}
		hits = append(hits, SearchHit{
			PID:          doc["pid"],
			Identifier:   doc["identifier"],
			Name:         Or(doc["personname"], doc["name"]),
			RelationType: doc["relationtype"],
			EventType:    doc["eventtype"],
			EventYear:    Get(doc, "eventdate", "year"),
			EventPlace:   doc["eventplace"],
			ArchiveCode:  doc["archive_code"],
			Archive:      doc["archive"],
			SourceType:   doc["sourcetype"],
			URL:          doc["url"],
		})
	}
	return hits
}

// MatchDocs normalizes a list of match docs.
func MatchDocs(docs []any) []Match {
	matches := make([]Match, 0, len(docs))
	for _, d := range docs {
		doc := Object(d)
		if doc == nil {
			continue
		}
		matches = append(matches, Match{
			URI:         doc["uri"],
			ArchiveCode: doc["archive_code"],
			Archive:     doc["archive"],
			EventType:   doc["eventtype"],
			EventPlace:  doc["eventplace"],
			SourceType:  doc["sourcetype"],
		})
	}
	return matches
}

// Query returns the echoed query object of a search or match response, or an
// empty object when the response carries none.
func Query(raw any) any {
	return GetOr(raw, "query", map[string]any{})
}

// Docs returns response.docs of a search or match response.
func Docs(raw any) []any {
	return List(Get(raw, "response", "docs"))
}

// NumberFound returns response.number_found as reported by the provider.
func NumberFound(raw any) any {
	return Get(raw, "response", "number_found")
}
