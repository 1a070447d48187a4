// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/aanchalalytcs/showcase/internal/core/cache"
	"github.com/aanchalalytcs/showcase/internal/core/mutation"
	"github.com/aanchalalytcs/showcase/internal/core/query"
	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/constants"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/session"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
)

// # Workspace

// Workspace is the per-session state of the project dataset.
type Workspace struct {
	Cache       *cache.Cache[record.Record]
	Coordinator *mutation.Coordinator[record.Record]
	View        *query.State
}

// Detach abandons outstanding mutations and stops the cache from writing to
// session storage. Called when the session ends.
func (workspace *Workspace) Detach() {
	workspace.Coordinator.Detach()
	workspace.Cache.Close()
}

// # Service Layer

// Option customises a [Service].
type Option func(*Service)

// WithArchive stores a copy of every export in archive.
func WithArchive(archive Archiver) Option {
	return func(service *Service) { service.archive = archive }
}

// WithAuditor records every settled mutation.
func WithAuditor(auditor mutation.Auditor) Option {
	return func(service *Service) { service.auditor = auditor }
}

// WithMetrics records cache and mutation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(service *Service) { service.metrics = m }
}

// WithPageSize sets the default page size.
func WithPageSize(size int) Option {
	return func(service *Service) { service.pageSize = size }
}

// WithRefreshTimeout bounds background cache refreshes.
func WithRefreshTimeout(d time.Duration) Option {
	return func(service *Service) { service.refreshTimeout = d }
}

// Service orchestrates the project dataset for every session.
type Service struct {
	store          Store
	archive        Archiver
	auditor        mutation.Auditor
	metrics        *metrics.Metrics
	logger         *slog.Logger
	pageSize       int
	refreshTimeout time.Duration
	clock          func() time.Time
}

// NewService constructs a new [Service].
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		store:          store,
		logger:         logger,
		pageSize:       pagination.DefaultLimit,
		refreshTimeout: 30 * time.Second,
		clock:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewWorkspace builds the project workspace of one session.
func (service *Service) NewWorkspace(sessionID string, storage session.Storage, notifier mutation.Notifier) *Workspace {
	logger := service.logger.With(slog.String("session_id", sessionID))

	snapshot := cache.New[record.Record](constants.DatasetProjects, storage, service.store.Records,
		cache.WithLogger[record.Record](logger),
		cache.WithMetrics[record.Record](service.metrics),
		cache.WithRefreshTimeout[record.Record](service.refreshTimeout),
	)

	opts := []mutation.Option{
		mutation.WithLogger(logger),
		mutation.WithMetrics(service.metrics),
		mutation.WithSessionID(sessionID),
	}
	if notifier != nil {
		opts = append(opts, mutation.WithNotifier(notifier))
		snapshot.OnRefreshError(func(err error) {
			notifier.Notify(mutation.RefreshFailed(constants.DatasetProjects, err))
		})
	}
	if service.auditor != nil {
		opts = append(opts, mutation.WithAuditor(service.auditor))
	}

	return &Workspace{
		Cache:       snapshot,
		Coordinator: mutation.New[record.Record](constants.DatasetProjects, service.store, snapshot, opts...),
		View:        query.NewState(),
	}
}

// # Listing

// Listing is one rendered page of the gallery or control panel.
type Listing struct {
	Page       query.Page[record.Record] `json:"-"`
	Criteria   query.Criteria            `json:"criteria"`
	Vocabulary query.Vocabulary          `json:"vocabulary"`
	Stale      bool                      `json:"stale"`
	InFlight   []string                  `json:"in_flight"`
	Selected   []string                  `json:"selected"`
	Bulk       bool                      `json:"bulk_in_flight"`
}

/*
List loads the snapshot and renders the current page of the session's view.

Parameters:
  - ctx: context.Context
  - workspace: *Workspace (session state)
  - force: bool (bypass the stored snapshot)
  - size: int (page size; zero uses the service default)

Returns:
  - Listing: page, vocabulary and per-row mutation state
  - error: upstream errors when no snapshot could be loaded
*/
func (service *Service) List(ctx context.Context, workspace *Workspace, force bool, size int) (Listing, error) {
	snapshot, err := workspace.Cache.Load(ctx, force)
	if err != nil {
		return Listing{}, err
	}

	if size < 1 {
		size = service.pageSize
	}
	page, _ := query.View(workspace.View, snapshot.Items, size)
	criteria, _ := workspace.View.Snapshot()

	return Listing{
		Page:       page,
		Criteria:   criteria,
		Vocabulary: snapshot.Vocabulary,
		Stale:      snapshot.Stale,
		InFlight:   workspace.Coordinator.InFlightIDs(),
		Selected:   workspace.Coordinator.Selected(),
		Bulk:       workspace.Coordinator.BulkInFlight(),
	}, nil
}

// Vocabulary returns the category options derived at the last load.
func (service *Service) Vocabulary(ctx context.Context, workspace *Workspace) (query.Vocabulary, error) {
	snapshot, err := workspace.Cache.Load(ctx, false)
	if err != nil {
		return query.Vocabulary{}, err
	}
	return snapshot.Vocabulary, nil
}

// # Moderation

// Delete removes a single project.
func (service *Service) Delete(ctx context.Context, workspace *Workspace, id string) error {
	return workspace.Coordinator.DeleteOne(ctx, id)
}

// BulkDelete removes ids, or the current selection when ids is empty.
func (service *Service) BulkDelete(ctx context.Context, workspace *Workspace, ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = workspace.Coordinator.Selected()
	}
	return workspace.Coordinator.DeleteMany(ctx, ids)
}

// ToggleSelection flips the selection of id and reports whether it is now selected.
func (service *Service) ToggleSelection(workspace *Workspace, id string) bool {
	return workspace.Coordinator.Toggle(id)
}

// # Submission

/*
Submit validates and posts a new project.

Validation failures never reach the network. On success the session's
snapshot is refreshed in the background so the new row shows up.

Returns:
  - string: the id assigned by the remote store
  - error: validation, upstream or rejection errors
*/
func (service *Service) Submit(ctx context.Context, workspace *Workspace, submission Submission) (string, error) {
	if err := submission.Validate(); err != nil {
		return "", err
	}

	id, err := service.store.Create(ctx, submission.Record().FormValues())
	if err != nil {
		return "", err
	}

	service.logger.Info("project_submitted", slog.String("id", id))
	if workspace != nil {
		workspace.Cache.RefreshAsync(ctx)
	}
	return id, nil
}

// # Reporting

/*
Export renders the session's filtered view, across all pages, as CSV.

When an archive is configured a copy is stored as well; archive failures are
logged and do not fail the download.
*/
func (service *Service) Export(ctx context.Context, workspace *Workspace) (Report, error) {
	snapshot, err := workspace.Cache.Load(ctx, false)
	if err != nil {
		return Report{}, err
	}

	criteria, _ := workspace.View.Snapshot()
	filtered := query.Filter(snapshot.Items, criteria)

	body, err := EncodeCSV(filtered)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Filename: reportFilename(criteria.Category),
		Body:     body,
		Rows:     len(filtered),
	}

	if service.archive != nil {
		key := archiveKey(report.Filename, service.clock().UTC())
		if err := service.archive.Put(ctx, key, body, reportContentType); err != nil {
			service.logger.Warn("report_archive_failed", slog.String("key", key), slog.Any("error", err))
		} else {
			report.ArchiveKey = key
		}
	}
	return report, nil
}

// Stats summarises the whole dataset, ignoring the view filters.
func (service *Service) Stats(ctx context.Context, workspace *Workspace) (Stats, error) {
	snapshot, err := workspace.Cache.Load(ctx, false)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(snapshot.Items), nil
}
