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

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses JSON the same way the upstream client does.
func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestGet(t *testing.T) {
	doc := decode(t, `{"a":{"b":{"c":"deep"}},"s":"str","n":null}`)

	assert.Equal(t, "deep", Get(doc, "a", "b", "c"))
	assert.Nil(t, Get(doc, "a", "missing", "c"))
	assert.Nil(t, Get(doc, "s", "x"), "descending into a string yields nil")
	assert.Nil(t, Get(doc, "n", "x"))
	assert.Nil(t, Get([]any{1}, "a"))
	assert.Equal(t, doc, Get(doc))
}

func TestGetOr(t *testing.T) {
	doc := decode(t, `{"present":null,"value":1}`)

	assert.Nil(t, GetOr(doc, "present", "def"))
	assert.Equal(t, "def", GetOr(doc, "absent", "def"))
	assert.Equal(t, json.Number("1"), GetOr(doc, "value", "def"))
	assert.Equal(t, "def", GetOr([]any{}, "value", "def"))
}

func TestTruthy(t *testing.T) {
	falsy := []any{nil, false, "", json.Number("0"), json.Number("0.0"), 0.0, 0, []any{}, map[string]any{}}
	for _, v := range falsy {
		assert.False(t, Truthy(v), "%#v should be falsy", v)
	}

	truthy := []any{true, "x", json.Number("1"), json.Number("-2.5"), 1.5, 3, []any{nil}, map[string]any{"a": nil}}
	for _, v := range truthy {
		assert.True(t, Truthy(v), "%#v should be truthy", v)
	}
}

func TestOr(t *testing.T) {
	assert.Equal(t, "a", Or("a", "b"))
	assert.Equal(t, "b", Or("", "b"))
	assert.Equal(t, "", Or(nil, ""))
	assert.Nil(t, Or(nil, nil))
}

func TestInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{json.Number("42"), 42, true},
		{json.Number("4.2"), 0, false},
		{42.0, 42, true},
		{42.5, 0, false},
		{7, 7, true},
		{"42", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := Int(tt.in)
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestObjects_NeverNil(t *testing.T) {
	assert.NotNil(t, Objects(nil))
	assert.Empty(t, Objects("not a list"))
	assert.Len(t, Objects([]any{map[string]any{}, "skip", 1, map[string]any{"a": 1}}), 2)
}

func TestSearchDocs(t *testing.T) {
	raw := decode(t, `{
		"query": {"name": "Jan Berg"},
		"response": {
			"number_found": 2,
			"docs": [
				{
					"pid": "p1", "identifier": "id-1", "personname": "Jan van der Berg", "name": "ignored",
					"relationtype": "Bruidegom", "eventtype": "Huwelijk", "eventdate": {"year": 1850, "month": 5},
					"eventplace": "Leiden", "archive_code": "elo", "archive": "Erfgoed Leiden", "sourcetype": "BS Huwelijk",
					"url": "https://www.openarchieven.nl/elo:id-1"
				},
				{"pid": "p2", "personname": "", "name": "Fallback", "eventdate": "1851"},
				"garbage"
			]
		}
	}`)

	hits := SearchDocs(Docs(raw))
	require.Len(t, hits, 2)

	assert.Equal(t, SearchHit{
		PID:          "p1",
		Identifier:   "id-1",
		Name:         "Jan van der Berg",
		RelationType: "Bruidegom",
		EventType:    "Huwelijk",
		EventYear:    json.Number("1850"),
		EventPlace:   "Leiden",
		ArchiveCode:  "elo",
		Archive:      "Erfgoed Leiden",
		SourceType:   "BS Huwelijk",
		URL:          "https://www.openarchieven.nl/elo:id-1",
	}, hits[0])

	assert.Equal(t, "Fallback", hits[1].Name)
	assert.Nil(t, hits[1].EventYear, "non-object eventdate degrades to null")
	assert.Nil(t, hits[1].URL)

	assert.Equal(t, map[string]any{"name": "Jan Berg"}, Query(raw))
	assert.Equal(t, json.Number("2"), NumberFound(raw))
}

func TestSearchDocs_JSONShape(t *testing.T) {
	out, err := json.Marshal(SearchDocs([]any{map[string]any{}}))
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"pid": null, "identifier": null, "name": null, "relation_type": null, "event_type": null,
		"event_year": null, "event_place": null, "archive_code": null, "archive": null,
		"source_type": null, "url": null
	}]`, string(out))

	out, err = json.Marshal(SearchDocs(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestSearchHelpers_MissingResponse(t *testing.T) {
	raw := decode(t, `{"response": "unexpected"}`)

	assert.Empty(t, Docs(raw))
	assert.Nil(t, NumberFound(raw))
	assert.Equal(t, map[string]any{}, Query(raw))
	assert.Equal(t, map[string]any{}, Query([]any{}))
}

func TestMatchDocs(t *testing.T) {
	raw := decode(t, `{"response":{"docs":[
		{"uri":"https://www.openarchieven.nl/gra:abc","archive_code":"gra","archive":"Gelders Archief",
		 "eventtype":"Doop","eventplace":"Arnhem","sourcetype":"DTB Dopen"}
	]}}`)

	matches := MatchDocs(Docs(raw))
	require.Len(t, matches, 1)
	assert.Equal(t, Match{
		URI:         "https://www.openarchieven.nl/gra:abc",
		ArchiveCode: "gra",
		Archive:     "Gelders Archief",
		EventType:   "Doop",
		EventPlace:  "Arnhem",
		SourceType:  "DTB Dopen",
	}, matches[0])
}

func TestPersonDisplayName(t *testing.T) {
	full := map[string]any{"PersonName": map[string]any{
		"PersonNameFirstName":      "Jan",
		"PersonNamePrefixLastName": "van der",
		"PersonNameLastName":       "Berg",
	}}
	name := PersonDisplayName(full)
	require.NotNil(t, name)
	assert.Equal(t, "Jan van der Berg", *name)

	noPrefix := map[string]any{"PersonName": map[string]any{
		"PersonNameFirstName": "Maria",
		"PersonNameLastName":  "Jansen",
	}}
	name = PersonDisplayName(noPrefix)
	require.NotNil(t, name)
	assert.Equal(t, "Maria Jansen", *name)

	emptyParts := map[string]any{"PersonName": map[string]any{
		"PersonNameFirstName": "",
		"PersonNameLastName":  nil,
	}}
	assert.Nil(t, PersonDisplayName(emptyParts))

	assert.Nil(t, PersonDisplayName(map[string]any{"PersonName": map[string]any{}}))
	assert.Nil(t, PersonDisplayName(map[string]any{}))
	assert.Nil(t, PersonDisplayName(map[string]any{"PersonName": "Jan Berg"}))
}

func TestA2ARecord_Full(t *testing.T) {
	raw := decode(t, `{
		"Person": [
			{"@pid": "Person1", "PersonName": {"PersonNameFirstName": "Jan", "PersonNamePrefixLastName": "van der", "PersonNameLastName": "Berg"}},
			{"pid": "Person2", "PersonName": {"PersonNameLastName": "Smit"}},
			{"PersonName": {}},
			"not-a-person"
		],
		"Event": {
			"EventType": "Geboorte",
			"EventDate": {"LiteralDate": "1 mei 1850", "Year": 1850, "Month": 5, "Day": 1},
			"EventPlace": {"Place": "Leiden"}
		},
		"Source": {
			"SourceType": "BS Geboorte",
			"SourcePlace": {"Place": "Leiden", "Country": "Nederland"},
			"SourceReference": {
				"InstitutionName": "Erfgoed Leiden", "Collection": "BS", "Book": "Geboorten 1850",
				"RegistryNumber": "12", "DocumentNumber": "345"
			}
		}
	}`)

	rec := A2ARecord(raw)

	require.Len(t, rec.Persons, 3)
	assert.Equal(t, "Person1", rec.Persons[0].PID)
	require.NotNil(t, rec.Persons[0].Name)
	assert.Equal(t, "Jan van der Berg", *rec.Persons[0].Name)
	assert.Equal(t, "Person2", rec.Persons[1].PID)
	assert.Equal(t, "Smit", *rec.Persons[1].Name)
	assert.Nil(t, rec.Persons[2].PID)
	assert.Nil(t, rec.Persons[2].Name)

	assert.Equal(t, RecordEvent{
		Type:        "Geboorte",
		LiteralDate: "1 mei 1850",
		Year:        json.Number("1850"),
		Month:       json.Number("5"),
		Day:         json.Number("1"),
		Place:       "Leiden",
	}, rec.Event)

	assert.Equal(t, RecordSource{
		Type:            "BS Geboorte",
		Place:           "Leiden",
		Country:         "Nederland",
		InstitutionName: "Erfgoed Leiden",
		Collection:      "BS",
		Book:            "Geboorten 1850",
		RegistryNumber:  "12",
		DocumentNumber:  "345",
	}, rec.Source)
}

func TestA2ARecord_MissingSections(t *testing.T) {
	rec := A2ARecord(decode(t, `{}`))

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"persons": [],
		"event": {"type": null, "literal_date": null, "year": null, "month": null, "day": null, "place": null},
		"source": {"type": null, "place": null, "country": null, "institution_name": null,
		           "collection": null, "book": null, "registry_number": null, "document_number": null}
	}`, string(out))
}

func TestA2ARecord_WrongTypes(t *testing.T) {
	raw := decode(t, `{
		"Person": {"@pid": "single"},
		"Event": {"EventType": "Doop", "EventDate": "1850", "EventPlace": ["Leiden"]},
		"Source": "unknown"
	}`)

	rec := A2ARecord(raw)

	assert.Empty(t, rec.Persons, "a non-list Person is treated as empty")
	assert.Equal(t, "Doop", rec.Event.Type)
	assert.Nil(t, rec.Event.Year)
	assert.Nil(t, rec.Event.Place)
	assert.Equal(t, RecordSource{}, rec.Source)

	assert.NotPanics(t, func() { A2ARecord([]any{1, 2}) })
	assert.NotPanics(t, func() { A2ARecord(nil) })
}

func TestBirths(t *testing.T) {
	raw := decode(t, `[
		{"archive_code":"elo","archive":"Erfgoed Leiden","identifier":"b1","name":"Pieter","place":"Leiden","scan":"https://scan","url":"https://r/b1"},
		{"identifier":"b2","scan":""},
		{"identifier":"b3"},
		42
	]`)

	births := Births(raw)
	require.Len(t, births, 3)
	assert.Equal(t, Birth{
		ArchiveCode: "elo",
		Archive:     "Erfgoed Leiden",
		Identifier:  "b1",
		Name:        "Pieter",
		Place:       "Leiden",
		HasScan:     true,
		URL:         "https://r/b1",
	}, births[0])
	assert.False(t, births[1].HasScan)
	assert.False(t, births[2].HasScan)

	assert.Empty(t, Births(decode(t, `{"error":"not a list"}`)))
}

func TestCensus(t *testing.T) {
	raw := decode(t, `{
		"census": [
			{"name":"Leiden","year":1859,"province":"Zuid-Holland","population":37000,"gg_uri":"https://gg/1","table":"t1"},
			"skip"
		],
		"totals": {"Zuid-Holland": 37000}
	}`)

	entries := Census(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, CensusEntry{
		Name:       "Leiden",
		Year:       json.Number("1859"),
		Province:   "Zuid-Holland",
		Population: json.Number("37000"),
		GGURI:      "https://gg/1",
		Table:      "t1",
	}, entries[0])
	assert.Equal(t, map[string]any{"Zuid-Holland": json.Number("37000")}, CensusTotals(raw))

	empty := decode(t, `[]`)
	assert.Empty(t, Census(empty))
	assert.Equal(t, map[string]any{}, CensusTotals(empty))
}

func TestComments(t *testing.T) {
	raw := decode(t, `[
		{"id":7,"identifier":"r1","archive":"elo","name":"Anna","comment":"Mooie akte","created":"2024-01-02 10:00:00"}
	]`)

	comments := Comments(raw)
	require.Len(t, comments, 1)
	assert.Equal(t, Comment{
		ID:         json.Number("7"),
		Identifier: "r1",
		Archive:    "elo",
		AuthorName: "Anna",
		Comment:    "Mooie akte",
		Created:    "2024-01-02 10:00:00",
	}, comments[0])

	assert.Empty(t, Comments(decode(t, `{"comments":[]}`)))
}
