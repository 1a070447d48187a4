// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the moderation flag of a lead.
type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

// ParseStatus normalises a status value. Matching is case-insensitive and
// anything unrecognised, including the empty string, becomes [StatusDisabled].
func ParseStatus(raw string) Status {
	if Status(strings.ToLower(strings.TrimSpace(raw))) == StatusEnabled {
		return StatusEnabled
	}
	return StatusDisabled
}

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusEnabled || s == StatusDisabled
}

// Lead is a contact submission moderated from the lead dashboard.
type Lead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (l Lead) Key() string    { return l.ID }
func (l Lead) Stamp() string  { return l.Timestamp }
func (l Lead) Title() string  { return l.Name }
func (l Lead) Facets() Facets { return Facets{} }

// WithStatus returns a copy of the lead with only the status replaced.
func (l Lead) WithStatus(s Status) Lead {
	l.Status = s
	return l
}

type sheetLead struct {
	ID        Opaque `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp Opaque `json:"Timestamp"`
}

// DecodeLeads parses the list response of the leads endpoint.
func DecodeLeads(body []byte) ([]Lead, error) {
	var rows []sheetLead
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("record: decode leads: %w", err)
	}

	leads := make([]Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, Lead{
			ID:        string(row.ID),
			Name:      row.Name,
			Email:     row.Email,
			Message:   row.Message,
			Status:    ParseStatus(row.Status),
			Timestamp: string(row.Timestamp),
		})
	}
	return leads, nil
}
