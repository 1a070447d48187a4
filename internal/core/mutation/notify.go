// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package mutation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelFailure Level = "failure"
)

// Notification is a transient, toast-style outcome message.
type Notification struct {
	Level   Level     `json:"level"`
	Dataset string    `json:"dataset"`
	Action  string    `json:"action"`
	IDs     []string  `json:"ids"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives mutation outcomes.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// RefreshFailed builds the notification for a failed background refresh of dataset.
// The stale snapshot stays on screen, so the message only says it could not be updated.
func RefreshFailed(dataset string, err error) Notification {
	message := "Could not refresh data"
	if ae := apperr.As(err); ae != nil && ae.Message != "" {
		message = ae.Message
	}
	return Notification{
		Level:   LevelFailure,
		Dataset: dataset,
		Action:  ActionRefresh,
		IDs:     []string{},
		Message: message,
		At:      time.Now().UTC(),
	}
}

// Inbox is a bounded notification queue drained by the client.
// When full, the oldest notification is dropped.
type Inbox struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
}

// NewInbox returns an inbox holding at most capacity notifications.
func NewInbox(capacity int) *Inbox {
	return &Inbox{capacity: max(capacity, 1)}
}

func (i *Inbox) Notify(n Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = append(i.items, n)
	if overflow := len(i.items) - i.capacity; overflow > 0 {
		i.items = slices.Delete(i.items, 0, overflow)
	}
}

// Drain returns every pending notification, oldest first, and empties the inbox.
func (i *Inbox) Drain() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	drained := i.items
	i.items = nil
	if drained == nil {
		return []Notification{}
	}
	return drained
}

// Len reports the number of pending notifications.
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items)
}

// # Audit

// Event is one settled mutation as recorded in the audit trail.
type Event struct {
	Dataset   string
	Action    string
	EntityID  string
	Outcome   string
	Message   string
	SessionID string
	At        time.Time
}

// Auditor persists settled mutations.
type Auditor interface {
	Record(ctx context.Context, event Event) error
}
