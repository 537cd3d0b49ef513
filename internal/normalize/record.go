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

import "strings"

// Record is the flattened form of an A2A record from records/show.json.
type Record struct {
	Persons []RecordPerson `json:"persons"`
	Event   RecordEvent    `json:"event"`
	Source  RecordSource   `json:"source"`
}

// RecordPerson is one A2A Person.
type RecordPerson struct {
	PID  any     `json:"pid"`
	Name *string `json:"name"`
}

// RecordEvent is the A2A Event with its date and place flattened.
type RecordEvent struct {
	Type        any `json:"type"`
	LiteralDate any `json:"literal_date"`
	Year        any `json:"year"`
	Month       any `json:"month"`
	Day         any `json:"day"`
	Place       any `json:"place"`
}

// RecordSource is the A2A Source with its place and reference flattened.
type RecordSource struct {
	Type            any `json:"type"`
	Place           any `json:"place"`
	Country         any `json:"country"`
	InstitutionName any `json:"institution_name"`
	Collection      any `json:"collection"`
	Book            any `json:"book"`
	RegistryNumber  any `json:"registry_number"`
	DocumentNumber  any `json:"document_number"`
}

// A2ARecord normalizes a records/show.json document.
func A2ARecord(raw any) Record {
	people := Objects(Get(raw, "Person"))
	persons := make([]RecordPerson, 0, len(people))
	for _, p := range people {
		persons = append(persons, RecordPerson{
			PID:  Or(p["@pid"], p["pid"]),
			Name: PersonDisplayName(p),
		})
	}

	event := Get(raw, "Event")
	source := Get(raw, "Source")

	return Record{
		Persons: persons,
		Event: RecordEvent{
			Type:        Get(event, "EventType"),
			LiteralDate: Get(event, "EventDate", "LiteralDate"),
			Year:        Get(event, "EventDate", "Year"),
			Month:       Get(event, "EventDate", "Month"),
			Day:         Get(event, "EventDate", "Day"),
			Place:       Get(event, "EventPlace", "Place"),
		},
		Source: RecordSource{
			Type:            Get(source, "SourceType"),
			Place:           Get(source, "SourcePlace", "Place"),
			Country:         Get(source, "SourcePlace", "Country"),
			InstitutionName: Get(source, "SourceReference", "InstitutionName"),
			Collection:      Get(source, "SourceReference", "Collection"),
			Book:            Get(source, "SourceReference", "Book"),
			RegistryNumber:  Get(source, "SourceReference", "RegistryNumber"),
			DocumentNumber:  Get(source, "SourceReference", "DocumentNumber"),
		},
	}
}

// PersonDisplayName joins first name, last-name prefix and last name of an
// A2A Person with single spaces. Absent or empty parts are skipped; nil is
// returned when no part is present.
func PersonDisplayName(person map[string]any) *string {
	pn := Object(person["PersonName"])
	if pn == nil {
		return nil
	}

	var parts []string
	for _, key := range []string{"PersonNameFirstName", "PersonNamePrefixLastName", "PersonNameLastName"} {
		if s, ok := pn[key].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	name := strings.Join(parts, " ")
	return &name
}
