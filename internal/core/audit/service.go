// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/aanchalalytcs/showcase/internal/core/mutation"
	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
	"github.com/aanchalalytcs/showcase/pkg/uuid"
)

// # Service Layer

// Service records moderation outcomes and lists them back. It implements
// [mutation.Auditor].
type Service struct {
	repository Repository
	logger     *slog.Logger
	clock      func() time.Time
}

var _ mutation.Auditor = (*Service)(nil)

// NewService constructs a new [Service]. A nil repository yields a disabled
// service that drops every event.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, clock: time.Now}
}

// Enabled reports whether events are persisted.
func (service *Service) Enabled() bool {
	return service.repository != nil
}

/*
Record persists a settled mutation.

Parameters:
  - ctx: context.Context
  - event: mutation.Event (one id of a settled delete or status change)

Returns:
  - error: apperr.Internal when the insert fails; nil when disabled
*/
func (service *Service) Record(ctx context.Context, event mutation.Event) error {
	if !service.Enabled() {
		return nil
	}

	at := event.At
	if at.IsZero() {
		at = service.clock()
	}

	entry := Entry{
		ID:        uuid.New(),
		Dataset:   event.Dataset,
		Action:    event.Action,
		EntityID:  event.EntityID,
		Outcome:   event.Outcome,
		Message:   event.Message,
		SessionID: event.SessionID,
		CreatedAt: at.UTC(),
	}

	if err := service.repository.Insert(ctx, entry); err != nil {
		return err
	}

	service.logger.Debug("audit_entry_recorded",
		slog.String("dataset", entry.Dataset),
		slog.String("action", entry.Action),
		slog.String("entity_id", entry.EntityID),
		slog.String("outcome", entry.Outcome),
	)
	return nil
}

// List returns one page of entries, newest first.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, pagination.Meta, error) {
	if !service.Enabled() {
		return nil, pagination.Meta{}, apperr.ServiceUnavailable("Audit trail is not configured")
	}

	entries, total, err := service.repository.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, pagination.NewMeta(page.Page, page.Limit, total), nil
}
