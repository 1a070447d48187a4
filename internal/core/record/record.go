// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Package record defines the entities served by the remote record store: the
// showcase [Record] (projects) and the [Lead] (contact submissions), together
// with their spreadsheet wire formats.
//
// Identity and timestamps are assigned by the remote store and are treated as
// opaque strings; nothing here generates or parses them for business logic.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aanchalalytcs/showcase/pkg/query"
)

// # Item Surface

// Facets is the (category, subcategory) pair used by the filter engine.
// Neither value is constrained; both are derived from observed data.
type Facets struct {
	Category    string
	Subcategory string
}

// Item is the minimal shape shared by every cached dataset row.
type Item interface {
	// Key returns the opaque identifier assigned by the remote store.
	Key() string
	// Stamp returns the opaque creation timestamp, used only for ordering.
	Stamp() string
	// Facets returns the category pair; empty for datasets without categories.
	Facets() Facets
	// Title returns the text matched by free-text search.
	Title() string
}

// # Project Record

// Record is a single showcase project.
type Record struct {
	ID            string   `json:"id"`
	Heading       string   `json:"heading"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	ImageRefs     []string `json:"image_refs"`
	VideoURL      string   `json:"video_url,omitempty"`
	RepositoryURL string   `json:"repository_url,omitempty"`
	Timestamp     string   `json:"timestamp"`
}

func (r Record) Key() string    { return r.ID }
func (r Record) Stamp() string  { return r.Timestamp }
func (r Record) Title() string  { return r.Heading }
func (r Record) Facets() Facets { return Facets{Category: r.Category, Subcategory: r.Subcategory} }

// HasImages reports whether the record carries at least one image reference.
// Records without images are rendered with a placeholder by the presentation layer.
func (r Record) HasImages() bool { return len(r.ImageRefs) > 0 }

// # Wire Format

// sheetRecord mirrors the spreadsheet columns, including the historical
// "discription" spelling.
type sheetRecord struct {
	ID          Opaque `json:"id"`
	Img         string `json:"img"`
	Heading     string `json:"heading"`
	Description string `json:"discription"`
	Category    string `json:"ctg"`
	Subcategory string `json:"subctg"`
	Video       string `json:"video"`
	GitHub      string `json:"github"`
	Timestamp   Opaque `json:"Timestamp"`
}

// DecodeRecords parses the list response of the projects endpoint.
func DecodeRecords(body []byte) ([]Record, error) {
	var rows []sheetRecord
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("record: decode projects: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			ID:            string(row.ID),
			Heading:       row.Heading,
			Description:   row.Description,
			Category:      row.Category,
			Subcategory:   row.Subcategory,
			ImageRefs:     query.StringSlice(row.Img),
			VideoURL:      row.Video,
			RepositoryURL: row.GitHub,
			Timestamp:     string(row.Timestamp),
		})
	}
	return records, nil
}

// FormValues encodes a record as the url-encoded create payload.
// The id and timestamp are omitted: the remote store assigns both.
func (r Record) FormValues() map[string]string {
	return map[string]string{
		"img":         query.JoinStrings(r.ImageRefs),
		"heading":     r.Heading,
		"discription": r.Description,
		"ctg":         r.Category,
		"subctg":      r.Subcategory,
		"video":       r.VideoURL,
		"github":      r.RepositoryURL,
	}
}

// # Opaque Values

// Opaque is a JSON scalar kept in its textual form. The spreadsheet returns
// ids as numbers or strings depending on the row, and timestamps as strings.
type Opaque string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (o *Opaque) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*o = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Opaque(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("record: expected scalar, got %s", data)
	default:
		*o = Opaque(strings.TrimSpace(string(data)))
	}
	return nil
}
