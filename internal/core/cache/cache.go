// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package cache keeps a session-scoped snapshot of one remote dataset.

The snapshot is read instantly on navigation and corrected in the background:
a load with a stored snapshot returns it and starts a refresh, a load without
one (or a forced load) blocks on the remote store. A failed fetch never touches
the stored snapshot and is never retried.

Snapshots are sorted newest first when stored, and carry the category
vocabulary derived at that moment. Later removals and updates do not recompute
the vocabulary; it is refreshed with the next fetch.
*/
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aanchalalytcs/showcase/internal/core/query"
	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/session"
)

// Fetcher loads the full dataset from the remote store.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Snapshot is what a load returns.
type Snapshot[T any] struct {
	Items      []T              `json:"items"`
	Vocabulary query.Vocabulary `json:"vocabulary"`
	FetchedAt  time.Time        `json:"fetched_at"`
	// Stale is set when the items came from storage and a background refresh
	// has been started to replace them.
	Stale bool `json:"-"`
}

// Option customises a [Cache].
type Option[T record.Item] func(*Cache[T])

// WithLogger sets the cache logger.
func WithLogger[T record.Item](logger *slog.Logger) Option[T] {
	return func(c *Cache[T]) { c.logger = logger }
}

// WithMetrics records loads on m.
func WithMetrics[T record.Item](m *metrics.Metrics) Option[T] {
	return func(c *Cache[T]) { c.metrics = m }
}

// WithRefreshTimeout bounds background refreshes, which outlive the request
// that started them.
func WithRefreshTimeout[T record.Item](d time.Duration) Option[T] {
	return func(c *Cache[T]) { c.refreshTimeout = d }
}

// Cache owns the snapshot of one dataset within one session.
type Cache[T record.Item] struct {
	name           string
	storage        session.Storage
	fetch          Fetcher[T]
	logger         *slog.Logger
	metrics        *metrics.Metrics
	refreshTimeout time.Duration

	flight     singleflight.Group
	background sync.WaitGroup

	// mu serialises writes to the stored snapshot and guards closed.
	mu     sync.Mutex
	closed bool

	listenerMu sync.RWMutex
	onRefresh  []func(Snapshot[T])
	onError    []func(error)
}

// New returns a cache storing its snapshot under "snapshot:<name>" in storage.
func New[T record.Item](name string, storage session.Storage, fetch Fetcher[T], opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		name:           name,
		storage:        storage,
		fetch:          fetch,
		logger:         slog.Default(),
		refreshTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("dataset", name))
	return c
}

func (c *Cache[T]) key() string { return "snapshot:" + c.name }

// # Listeners

// OnRefresh registers fn to run after every successful background refresh.
func (c *Cache[T]) OnRefresh(fn func(Snapshot[T])) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.onRefresh = append(c.onRefresh, fn)
}

// OnRefreshError registers fn to run after every failed background refresh.
func (c *Cache[T]) OnRefreshError(fn func(error)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.onError = append(c.onError, fn)
}

// # Reads

// Load returns the dataset snapshot.
//
// With a stored snapshot and force unset, the stored snapshot is returned with
// Stale set and a background refresh is started. Otherwise Load blocks on the
// remote store, stores the sorted result and returns it. On fetch failure the
// stored snapshot is left as it was and the error is returned.
func (c *Cache[T]) Load(ctx context.Context, force bool) (Snapshot[T], error) {
	if !force {
		stored, ok, err := c.Current(ctx)
		if err != nil {
			c.logger.Warn("cache_read_failed", slog.Any("error", err))
		}
		if ok {
			c.metrics.CacheLoad(c.name, "hit")
			c.RefreshAsync(ctx)
			stored.Stale = true
			return stored, nil
		}
	}

	snapshot, err := c.refresh(ctx)
	if err != nil {
		c.metrics.CacheLoad(c.name, "error")
		return Snapshot[T]{}, err
	}
	c.metrics.CacheLoad(c.name, "miss")
	return snapshot, nil
}

// Current returns the stored snapshot without contacting the remote store.
func (c *Cache[T]) Current(ctx context.Context) (Snapshot[T], bool, error) {
	raw, ok, err := c.storage.Get(ctx, c.key())
	if err != nil || !ok {
		return Snapshot[T]{}, false, err
	}

	var snapshot Snapshot[T]
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return Snapshot[T]{}, false, fmt.Errorf("cache: decode %s snapshot: %w", c.name, err)
	}
	if snapshot.Items == nil {
		snapshot.Items = []T{}
	}
	return snapshot, true, nil
}

// # Refresh

// RefreshAsync starts a background refresh detached from ctx's cancellation.
// Concurrent refreshes collapse into one fetch.
func (c *Cache[T]) RefreshAsync(ctx context.Context) {
	detached := context.WithoutCancel(ctx)

	c.background.Add(1)
	go func() {
		defer c.background.Done()

		refreshCtx, cancel := context.WithTimeout(detached, c.refreshTimeout)
		defer cancel()

		snapshot, err := c.refresh(refreshCtx)
		if err != nil {
			c.logger.Warn("cache_refresh_failed", slog.Any("error", err))
			c.listenerMu.RLock()
			listeners := slices.Clone(c.onError)
			c.listenerMu.RUnlock()
			for _, fn := range listeners {
				fn(err)
			}
			return
		}

		c.logger.Debug("cache_refresh_completed", slog.Int("items", len(snapshot.Items)))
		c.listenerMu.RLock()
		listeners := slices.Clone(c.onRefresh)
		c.listenerMu.RUnlock()
		for _, fn := range listeners {
			fn(snapshot)
		}
	}()
}

// Close stops the cache from writing to storage. Refreshes still in flight
// finish but their results are not stored. Called when the session ends.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Wait blocks until every background refresh started so far has finished.
func (c *Cache[T]) Wait() {
	c.background.Wait()
}

func (c *Cache[T]) refresh(ctx context.Context) (Snapshot[T], error) {
	value, err, _ := c.flight.Do(c.key(), func() (any, error) {
		items, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		sorted := SortNewestFirst(items)
		snapshot := Snapshot[T]{
			Items:      sorted,
			Vocabulary: query.DeriveVocabulary(sorted),
			FetchedAt:  time.Now().UTC(),
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			c.logger.Debug("cache_write_skipped_closed")
			return snapshot, nil
		}
		if err := c.store(ctx, snapshot); err != nil {
			c.logger.Warn("cache_write_failed", slog.Any("error", err))
		}
		return snapshot, nil
	})
	if err != nil {
		return Snapshot[T]{}, err
	}

	snapshot := value.(Snapshot[T])
	snapshot.Items = slices.Clone(snapshot.Items)
	return snapshot, nil
}

func (c *Cache[T]) store(ctx context.Context, snapshot Snapshot[T]) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("cache: encode %s snapshot: %w", c.name, err)
	}
	return c.storage.Set(ctx, c.key(), raw)
}

// # Reconciliation

// Remove drops the items with the given ids from the stored snapshot and
// returns how many were removed. Without a stored snapshot it does nothing.
func (c *Cache[T]) Remove(ctx context.Context, ids ...string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, nil
	}

	snapshot, ok, err := c.Current(ctx)
	if err != nil || !ok {
		return 0, err
	}

	before := len(snapshot.Items)
	snapshot.Items = slices.DeleteFunc(snapshot.Items, func(item T) bool {
		_, hit := drop[item.Key()]
		return hit
	})
	removed := before - len(snapshot.Items)
	if removed == 0 {
		return 0, nil
	}
	return removed, c.store(ctx, snapshot)
}

// Update replaces the item with the given id by fn(item) and reports whether
// it was found. Only the stored snapshot changes; no fetch happens.
func (c *Cache[T]) Update(ctx context.Context, id string, fn func(T) T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, nil
	}

	snapshot, ok, err := c.Current(ctx)
	if err != nil || !ok {
		return false, err
	}

	index := slices.IndexFunc(snapshot.Items, func(item T) bool { return item.Key() == id })
	if index < 0 {
		return false, nil
	}
	snapshot.Items[index] = fn(snapshot.Items[index])
	return true, c.store(ctx, snapshot)
}

// Invalidate clears the stored snapshot so the next load blocks on the remote store.
func (c *Cache[T]) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.Clear(ctx, c.key())
}
