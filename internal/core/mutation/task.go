// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package mutation

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
)

// ErrAbandoned is the result of a task cancelled before it settled.
var ErrAbandoned = errors.New("mutation: abandoned")

// Task is a handle on a running mutation.
//
// Cancelling a task abandons it: when its request returns, the response is
// neither reconciled into the cache nor notified. Unless the coordinator was
// built with [WithAbortOnCancel], the request itself still runs to completion.
type Task struct {
	done      chan struct{}
	abandoned atomic.Bool
	abort     context.CancelFunc

	mu      sync.Mutex
	err     error
	removed []string
}

func newTask(abort context.CancelFunc) *Task {
	return &Task{done: make(chan struct{}), abort: abort}
}

// settledTask returns a task that already finished with err.
func settledTask(err error) *Task {
	t := newTask(nil)
	t.finish(err)
	return t
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task settles and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.Err()
}

// Err returns the task error, or nil while it is still running.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Removed lists the ids removed from the cache by this task.
func (t *Task) Removed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.removed)
}

// Cancel abandons the task. It is safe to call more than once and after settlement.
func (t *Task) Cancel() {
	t.abandoned.Store(true)
	if t.abort != nil {
		t.abort()
	}
}

// Abandoned reports whether Cancel was called.
func (t *Task) Abandoned() bool { return t.abandoned.Load() }

func (t *Task) addRemoved(ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removed = append(t.removed, ids...)
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	if t.abandoned.Load() {
		err = ErrAbandoned
	}
	t.err = err
	t.mu.Unlock()
	close(t.done)
}
