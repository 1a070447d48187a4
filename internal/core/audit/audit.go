// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package audit keeps a durable trail of moderation outcomes: every delete and
status change settled by the mutation coordinator, successful or not.

The trail lives in PostgreSQL. Without a database the [Service] runs disabled:
events are dropped and the listing endpoint answers 503.
*/
package audit

import (
	"context"
	"time"

	"github.com/aanchalalytcs/showcase/pkg/pagination"
)

// # Domain Model

// Entry is one recorded moderation outcome.
type Entry struct {
	ID        string    `json:"id"`
	Dataset   string    `json:"dataset"`
	Action    string    `json:"action"`
	EntityID  string    `json:"entity_id"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Dataset  string
	EntityID string
}

// # Repository

// Repository persists entries.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	// List returns one page of entries, newest first, and the total match count.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, int, error)
}
