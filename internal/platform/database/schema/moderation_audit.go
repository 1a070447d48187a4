// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Package schema names the tables and columns of the relational store so
// queries never spell them inline.
package schema

// ModerationAuditTable represents the 'moderation_audit' table
type ModerationAuditTable struct {
	Table     string
	ID        string
	Dataset   string
	Action    string
	EntityID  string
	Outcome   string
	Message   string
	SessionID string
	CreatedAt string
}

var ModerationAudit = ModerationAuditTable{
	Table:     "moderation_audit",
	ID:        "id",
	Dataset:   "dataset",
	Action:    "action",
	EntityID:  "entity_id",
	Outcome:   "outcome",
	Message:   "message",
	SessionID: "session_id",
	CreatedAt: "created_at",
}
