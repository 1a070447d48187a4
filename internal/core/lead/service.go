// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package lead

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aanchalalytcs/showcase/internal/core/cache"
	"github.com/aanchalalytcs/showcase/internal/core/mutation"
	"github.com/aanchalalytcs/showcase/internal/core/query"
	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/constants"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/session"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
	"github.com/aanchalalytcs/showcase/pkg/slice"
)

// # Workspace

// Workspace is the per-session state of the lead dataset.
type Workspace struct {
	Cache       *cache.Cache[record.Lead]
	Coordinator *mutation.Coordinator[record.Lead]
	View        *query.State

	mu sync.Mutex
	// status narrows the list to one status; empty shows every lead.
	status record.Status
	// contacted holds the emails a welcome mail was opened for.
	contacted map[string]struct{}
}

// Status returns the active status filter.
func (workspace *Workspace) Status() record.Status {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.status
}

// SetStatusFilter narrows the list to status. Empty or unknown values clear the
// filter. A change resets the view to page 1.
func (workspace *Workspace) SetStatusFilter(raw string) {
	status := record.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		status = ""
	}

	workspace.mu.Lock()
	changed := workspace.status != status
	workspace.status = status
	workspace.mu.Unlock()

	if changed {
		workspace.View.SetPage(1)
	}
}

// Contacted reports whether a welcome mail was opened for email.
func (workspace *Workspace) Contacted(email string) bool {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	_, ok := workspace.contacted[email]
	return ok
}

func (workspace *Workspace) markContacted(email string) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.contacted[email] = struct{}{}
}

func (workspace *Workspace) forget(email string) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	delete(workspace.contacted, email)
}

func (workspace *Workspace) contactedEmails() []string {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return slices.Sorted(maps.Keys(workspace.contacted))
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

// Service orchestrates the lead dataset for every session.
type Service struct {
	store          Store
	brand          Brand
	auditor        mutation.Auditor
	metrics        *metrics.Metrics
	logger         *slog.Logger
	pageSize       int
	refreshTimeout time.Duration
}

// NewService constructs a new [Service].
func NewService(store Store, brand Brand, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		store:          store,
		brand:          brand,
		logger:         logger,
		pageSize:       pagination.DefaultLimit,
		refreshTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewWorkspace builds the lead workspace of one session.
func (service *Service) NewWorkspace(sessionID string, storage session.Storage, notifier mutation.Notifier) *Workspace {
	logger := service.logger.With(slog.String("session_id", sessionID))

	snapshot := cache.New[record.Lead](constants.DatasetLeads, storage, service.store.Leads,
		cache.WithLogger[record.Lead](logger),
		cache.WithMetrics[record.Lead](service.metrics),
		cache.WithRefreshTimeout[record.Lead](service.refreshTimeout),
	)

	opts := []mutation.Option{
		mutation.WithLogger(logger),
		mutation.WithMetrics(service.metrics),
		mutation.WithSessionID(sessionID),
	}
	if notifier != nil {
		opts = append(opts, mutation.WithNotifier(notifier))
		snapshot.OnRefreshError(func(err error) {
			notifier.Notify(mutation.RefreshFailed(constants.DatasetLeads, err))
		})
	}
	if service.auditor != nil {
		opts = append(opts, mutation.WithAuditor(service.auditor))
	}

	return &Workspace{
		Cache:       snapshot,
		Coordinator: mutation.New[record.Lead](constants.DatasetLeads, service.store, snapshot, opts...),
		View:        query.NewState(),
		contacted:   map[string]struct{}{},
	}
}

// # Listing

// Counts summarises the dataset by status, ignoring the view filters.
type Counts struct {
	Total     int `json:"total"`
	Enabled   int `json:"enabled"`
	Disabled  int `json:"disabled"`
	Contacted int `json:"contacted"`
}

// Listing is one rendered page of the lead dashboard.
type Listing struct {
	Page      query.Page[record.Lead] `json:"-"`
	Status    record.Status           `json:"status,omitempty"`
	Search    string                  `json:"search"`
	Counts    Counts                  `json:"counts"`
	Stale     bool                    `json:"stale"`
	InFlight  []string                `json:"in_flight"`
	Contacted []string                `json:"contacted"`
}

/*
List loads the snapshot and renders the current page of the session's view.

The status filter is applied before search and pagination; the counts always
cover the whole dataset.
*/
func (service *Service) List(ctx context.Context, workspace *Workspace, force bool, size int) (Listing, error) {
	snapshot, err := workspace.Cache.Load(ctx, force)
	if err != nil {
		return Listing{}, err
	}

	if size < 1 {
		size = service.pageSize
	}

	status := workspace.Status()
	items := snapshot.Items
	if status != "" {
		items = slice.Filter(items, func(lead record.Lead) bool { return lead.Status == status })
	}
	page, _ := query.View(workspace.View, items, size)
	criteria, _ := workspace.View.Snapshot()

	return Listing{
		Page:      page,
		Status:    status,
		Search:    criteria.Search,
		Counts:    service.count(workspace, snapshot.Items),
		Stale:     snapshot.Stale,
		InFlight:  workspace.Coordinator.InFlightIDs(),
		Contacted: workspace.contactedEmails(),
	}, nil
}

func (service *Service) count(workspace *Workspace, leads []record.Lead) Counts {
	counts := Counts{Total: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case record.StatusEnabled:
			counts.Enabled++
		default:
			counts.Disabled++
		}
		if workspace.Contacted(lead.Email) {
			counts.Contacted++
		}
	}
	return counts
}

// # Moderation

// SetStatus enables or disables a lead. The cached row changes only after the
// remote store confirms.
func (service *Service) SetStatus(ctx context.Context, workspace *Workspace, id, raw string) error {
	status := record.Status(strings.ToLower(strings.TrimSpace(raw)))
	return workspace.Coordinator.SetStatus(ctx, id, status, record.Lead.WithStatus)
}

// Delete removes a lead and forgets that it was contacted.
func (service *Service) Delete(ctx context.Context, workspace *Workspace, id string) error {
	lead, found := service.find(ctx, workspace, id)

	if err := workspace.Coordinator.DeleteOne(ctx, id); err != nil {
		return err
	}
	if found {
		workspace.forget(lead.Email)
	}
	return nil
}

// # Welcome Mail

// Welcome is the mail composed for a lead.
type Welcome struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Link    string `json:"mailto"`
}

// Welcome composes the welcome mail for id and marks the lead as contacted.
func (service *Service) Welcome(ctx context.Context, workspace *Workspace, id string) (Welcome, error) {
	lead, found := service.find(ctx, workspace, id)
	if !found {
		if _, err := workspace.Cache.Load(ctx, true); err != nil {
			return Welcome{}, err
		}
		if lead, found = service.find(ctx, workspace, id); !found {
			return Welcome{}, apperr.NotFound("Lead")
		}
	}

	workspace.markContacted(lead.Email)
	service.logger.Debug("welcome_mail_composed", slog.String("id", id))

	return Welcome{
		ID:      lead.ID,
		Email:   lead.Email,
		Subject: service.brand.WelcomeSubject(),
		Body:    service.brand.WelcomeBody(lead.Name),
		Link:    service.brand.WelcomeLink(lead),
	}, nil
}

// find looks id up in the stored snapshot without contacting the remote store.
func (service *Service) find(ctx context.Context, workspace *Workspace, id string) (record.Lead, bool) {
	snapshot, ok, err := workspace.Cache.Current(ctx)
	if err != nil || !ok {
		return record.Lead{}, false
	}
	for _, lead := range snapshot.Items {
		if lead.ID == id {
			return lead, true
		}
	}
	return record.Lead{}, false
}
