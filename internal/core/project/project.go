// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package project serves the showcase project dataset: the public gallery, the
admin control panel, the submission form and the analytics report.

Each API session owns a [Workspace] (its snapshot cache, gallery view state,
selection and in-flight marks); the [Service] is shared and stateless.
*/
package project

import (
	"context"

	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/sheets"
)

// # Remote Store

// Store is the remote projects deployment.
type Store interface {
	Records(ctx context.Context) ([]record.Record, error)
	Create(ctx context.Context, fields map[string]string) (string, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

// SheetStore adapts a [sheets.Client] to [Store].
type SheetStore struct {
	*sheets.Client
}

// NewSheetStore wraps client.
func NewSheetStore(client *sheets.Client) *SheetStore {
	return &SheetStore{Client: client}
}

// Records lists and decodes every project row.
func (store *SheetStore) Records(ctx context.Context) ([]record.Record, error) {
	return sheets.Fetch(ctx, store.Client, record.DecodeRecords)
}

// # Archive

// Archiver keeps a copy of generated reports.
type Archiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
