// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package mutation sequences deletes and status updates against the remote
record store and reconciles the cached snapshot once the store has answered.

Rules:

  - A row has at most one operation in flight. A second operation on the same
    id is refused with a conflict until the first one settles.
  - In-flight marks are always cleared when an operation settles, whatever the
    outcome.
  - Updates are confirm-then-apply: the cache changes only after the store
    reports success. A failure leaves the cache exactly as it was.
  - Bulk deletes run one request at a time. Per-item answers are not
    inspected: a rejection, an error status or a malformed body all count as
    returned, so the id is removed. Only a request that never got an answer
    stops the batch; ids removed before it stay removed.
*/
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
)

// Action names used in notifications, metrics and the audit trail.
const (
	ActionDelete     = "delete"
	ActionBulkDelete = "bulk_delete"
	ActionSetStatus  = "set_status"
	// ActionRefresh reports background snapshot refreshes; it never reaches the audit trail.
	ActionRefresh = "refresh"
)

// Remote is the subset of the record store client the coordinator drives.
type Remote interface {
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

// Snapshot is the cached dataset the coordinator reconciles.
type Snapshot[T any] interface {
	Remove(ctx context.Context, ids ...string) (int, error)
	Update(ctx context.Context, id string, fn func(T) T) (bool, error)
}

type settings struct {
	logger        *slog.Logger
	metrics       *metrics.Metrics
	notifier      Notifier
	auditor       Auditor
	sessionID     string
	abortOnCancel bool
}

// Option customises a [Coordinator].
type Option func(*settings)

// WithLogger sets the coordinator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMetrics records settled mutations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithNotifier delivers outcome notifications to n.
func WithNotifier(n Notifier) Option {
	return func(s *settings) { s.notifier = n }
}

// WithAuditor records every settled mutation with a.
func WithAuditor(a Auditor) Option {
	return func(s *settings) { s.auditor = a }
}

// WithSessionID tags audit events with the owning session.
func WithSessionID(id string) Option {
	return func(s *settings) { s.sessionID = id }
}

// WithAbortOnCancel makes [Task.Cancel] also cancel the outstanding request.
func WithAbortOnCancel() Option {
	return func(s *settings) { s.abortOnCancel = true }
}

// Coordinator serialises mutations of one dataset within one session.
type Coordinator[T record.Item] struct {
	dataset  string
	remote   Remote
	snapshot Snapshot[T]
	settings

	mu        sync.Mutex
	inFlight  map[string]struct{}
	bulk      bool
	selection map[string]struct{}
	tasks     map[*Task]struct{}
}

// New returns a coordinator for dataset.
func New[T record.Item](dataset string, remote Remote, snapshot Snapshot[T], opts ...Option) *Coordinator[T] {
	s := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	s.logger = s.logger.With(slog.String("dataset", dataset))

	return &Coordinator[T]{
		dataset:   dataset,
		remote:    remote,
		snapshot:  snapshot,
		settings:  s,
		inFlight:  make(map[string]struct{}),
		selection: make(map[string]struct{}),
		tasks:     make(map[*Task]struct{}),
	}
}

// # Observable State

// InFlight reports whether id has an operation in flight.
func (c *Coordinator[T]) InFlight(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[id]
	return ok
}

// InFlightIDs lists the ids with an operation in flight, sorted.
func (c *Coordinator[T]) InFlightIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.inFlight))
}

// BulkInFlight reports whether a bulk delete is running.
func (c *Coordinator[T]) BulkInFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bulk
}

// # Selection

// Toggle flips the selection of id and reports whether it is now selected.
func (c *Coordinator[T]) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
		return false
	}
	c.selection[id] = struct{}{}
	return true
}

// Select adds ids to the selection.
func (c *Coordinator[T]) Select(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.selection[id] = struct{}{}
	}
}

// Selected lists the selected ids, sorted.
func (c *Coordinator[T]) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.selection))
}

// ClearSelection empties the selection.
func (c *Coordinator[T]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.selection)
}

// # Single Delete

// DeleteOne deletes id and waits for the outcome.
func (c *Coordinator[T]) DeleteOne(ctx context.Context, id string) error {
	return c.StartDeleteOne(ctx, id).Wait()
}

// StartDeleteOne deletes id in the background. On success the row is removed
// from the cache; on failure the cache is untouched.
func (c *Coordinator[T]) StartDeleteOne(ctx context.Context, id string) *Task {
	if err := c.mark(id); err != nil {
		return settledTask(err)
	}

	task, requestCtx := c.begin(ctx)
	go func() {
		var err error
		defer func() { c.end(task, err, id) }()

		err = c.remote.Delete(requestCtx, id)
		if task.Abandoned() {
			return
		}
		if err != nil {
			c.fail(ctx, ActionDelete, []string{id}, err)
			return
		}

		c.remove(ctx, task, id)
		c.succeed(ctx, ActionDelete, []string{id}, "Deleted successfully")
	}()
	return task
}

// # Bulk Delete

// DeleteMany deletes ids one at a time and waits for the batch.
func (c *Coordinator[T]) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	task := c.StartDeleteMany(ctx, ids)
	err := task.Wait()
	return task.Removed(), err
}

// StartDeleteMany runs a bulk delete in the background. An empty ids slice is
// refused with [apperr.NothingSelected]; so is a batch while another runs.
// Cancelling the task stops the batch after the current request.
func (c *Coordinator[T]) StartDeleteMany(ctx context.Context, ids []string) *Task {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return settledTask(apperr.NothingSelected())
	}
	if err := c.markBulk(ids); err != nil {
		return settledTask(err)
	}

	task, requestCtx := c.begin(ctx)
	go func() {
		var err error
		defer func() {
			c.ClearSelection()
			c.endBulk(task, err, ids)
		}()

		var settled []string
		for _, id := range ids {
			if task.Abandoned() {
				return
			}

			requestErr := c.remote.Delete(requestCtx, id)
			if requestErr != nil && !apperr.Answered(requestErr) {
				err = requestErr
				break
			}
			c.unmark(id)
			settled = append(settled, id)

			if !task.Abandoned() {
				c.remove(ctx, task, id)
			}
		}

		if task.Abandoned() {
			return
		}
		if err != nil {
			if len(settled) > 0 {
				c.settle(ctx, ActionBulkDelete, settled, metrics.OutcomeSuccess, "Deleted")
			}
			c.fail(ctx, ActionBulkDelete, ids[len(settled):],
				fmt.Errorf("bulk delete stopped after %d of %d: %w", len(settled), len(ids), err))
			return
		}
		c.succeed(ctx, ActionBulkDelete, settled, fmt.Sprintf("Deleted %d items", len(settled)))
	}()
	return task
}

// # Status Update

// SetStatus updates the status of id and waits for the outcome. apply derives
// the updated item; it runs only after the store confirms.
func (c *Coordinator[T]) SetStatus(ctx context.Context, id string, status record.Status, apply func(T, record.Status) T) error {
	return c.StartSetStatus(ctx, id, status, apply).Wait()
}

// StartSetStatus updates the status of id in the background.
func (c *Coordinator[T]) StartSetStatus(ctx context.Context, id string, status record.Status, apply func(T, record.Status) T) *Task {
	if !status.Valid() {
		return settledTask(apperr.ValidationError("Invalid status",
			apperr.FieldError{Field: "status", Message: "Status must be enabled or disabled."}))
	}
	if err := c.mark(id); err != nil {
		return settledTask(err)
	}

	task, requestCtx := c.begin(ctx)
	go func() {
		var err error
		defer func() { c.end(task, err, id) }()

		err = c.remote.SetStatus(requestCtx, id, string(status))
		if task.Abandoned() {
			return
		}
		if err != nil {
			c.fail(ctx, ActionSetStatus, []string{id}, err)
			return
		}

		if _, updateErr := c.snapshot.Update(context.WithoutCancel(ctx), id, func(item T) T {
			return apply(item, status)
		}); updateErr != nil {
			c.logger.Warn("cache_reconcile_failed", slog.String("id", id), slog.Any("error", updateErr))
		}
		c.succeed(ctx, ActionSetStatus, []string{id}, "Status updated to "+string(status))
	}()
	return task
}

// # Lifecycle

// Detach abandons every outstanding task. Late responses are then ignored.
func (c *Coordinator[T]) Detach() {
	c.mu.Lock()
	tasks := slices.Collect(maps.Keys(c.tasks))
	c.mu.Unlock()

	for _, task := range tasks {
		task.Cancel()
	}
}

// # Internals

func (c *Coordinator[T]) mark(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[id]; busy {
		return apperr.Conflict("An operation on this row is already in progress")
	}
	c.inFlight[id] = struct{}{}
	return nil
}

func (c *Coordinator[T]) markBulk(ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bulk {
		return apperr.Conflict("A bulk delete is already in progress")
	}
	for _, id := range ids {
		if _, busy := c.inFlight[id]; busy {
			return apperr.Conflict("An operation on row " + id + " is already in progress")
		}
	}
	c.bulk = true
	for _, id := range ids {
		c.inFlight[id] = struct{}{}
	}
	return nil
}

func (c *Coordinator[T]) unmark(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.inFlight, id)
	}
}

func (c *Coordinator[T]) begin(ctx context.Context) (*Task, context.Context) {
	requestCtx := context.WithoutCancel(ctx)
	var abort context.CancelFunc
	if c.abortOnCancel {
		requestCtx, abort = context.WithCancel(requestCtx)
	}

	task := newTask(abort)
	c.mu.Lock()
	c.tasks[task] = struct{}{}
	c.mu.Unlock()
	return task, requestCtx
}

func (c *Coordinator[T]) end(task *Task, err error, ids ...string) {
	c.mu.Lock()
	for _, id := range ids {
		delete(c.inFlight, id)
	}
	delete(c.tasks, task)
	c.mu.Unlock()

	if task.abort != nil {
		task.abort()
	}
	task.finish(err)
}

func (c *Coordinator[T]) endBulk(task *Task, err error, ids []string) {
	c.mu.Lock()
	c.bulk = false
	c.mu.Unlock()
	c.end(task, err, ids...)
}

func (c *Coordinator[T]) remove(ctx context.Context, task *Task, id string) {
	if _, err := c.snapshot.Remove(context.WithoutCancel(ctx), id); err != nil {
		c.logger.Warn("cache_reconcile_failed", slog.String("id", id), slog.Any("error", err))
	}
	task.addRemoved(id)
}

func (c *Coordinator[T]) succeed(ctx context.Context, action string, ids []string, message string) {
	c.settle(ctx, action, ids, metrics.OutcomeSuccess, message)
	c.notify(LevelSuccess, action, ids, message)
}

func (c *Coordinator[T]) fail(ctx context.Context, action string, ids []string, err error) {
	outcome := outcomeOf(err)
	message := apperr.GenericFailure
	if ae := apperr.As(err); ae != nil {
		message = ae.Message
	}

	c.logger.Warn("mutation_failed",
		slog.String("action", action),
		slog.Any("ids", ids),
		slog.String("outcome", outcome),
		slog.Any("error", err),
	)
	c.settle(ctx, action, ids, outcome, message)
	c.notify(LevelFailure, action, ids, message)
}

func (c *Coordinator[T]) settle(ctx context.Context, action string, ids []string, outcome, message string) {
	c.metrics.Mutation(c.dataset, action, outcome)
	if c.auditor == nil {
		return
	}

	at := time.Now().UTC()
	auditCtx := context.WithoutCancel(ctx)
	for _, id := range ids {
		event := Event{
			Dataset:   c.dataset,
			Action:    action,
			EntityID:  id,
			Outcome:   outcome,
			Message:   message,
			SessionID: c.sessionID,
			At:        at,
		}
		if err := c.auditor.Record(auditCtx, event); err != nil {
			c.logger.Warn("audit_record_failed", slog.String("id", id), slog.Any("error", err))
		}
	}
}

func (c *Coordinator[T]) notify(level Level, action string, ids []string, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(Notification{
		Level:   level,
		Dataset: c.dataset,
		Action:  action,
		IDs:     slices.Clone(ids),
		Message: message,
		At:      time.Now().UTC(),
	})
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case apperr.HasCode(err, "UPSTREAM_REJECTED"):
		return metrics.OutcomeRejected
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return metrics.OutcomeFailure
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
