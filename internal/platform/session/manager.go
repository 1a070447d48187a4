// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aanchalalytcs/showcase/pkg/uuid"
)

// ManagerConfig wires a [Manager].
type ManagerConfig[W any] struct {
	// Backend opens the storage scope of a new session.
	Backend Backend
	// Build creates the workspace of a new session.
	Build func(sessionID string, storage Scoped) W
	// Release runs when a session ends, before its storage is cleared. Optional.
	Release func(W)
	// IdleTTL ends sessions not touched for this long. Zero disables expiry.
	IdleTTL time.Duration
	Logger  *slog.Logger
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

type entry[W any] struct {
	workspace W
	storage   Scoped
	lastSeen  time.Time
}

// Manager owns one workspace per session id.
type Manager[W any] struct {
	cfg ManagerConfig[W]

	mu       sync.Mutex
	sessions map[string]*entry[W]
}

// NewManager returns an empty manager. Backend and Build are required.
func NewManager[W any](cfg ManagerConfig[W]) *Manager[W] {
	if cfg.Backend == nil {
		cfg.Backend = MemoryBackend{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Manager[W]{cfg: cfg, sessions: make(map[string]*entry[W])}
}

// Acquire returns the workspace for id, creating the session when it is not
// known yet. Ids that are not well-formed UUIDs are replaced by a fresh one,
// so callers must hand the returned id back to the client.
func (m *Manager[W]) Acquire(id string) (workspace W, sessionID string, created bool) {
	if !uuid.Valid(id) {
		id = uuid.New()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.cfg.Clock()
	if current, ok := m.sessions[id]; ok {
		current.lastSeen = now
		return current.workspace, id, false
	}

	storage := m.cfg.Backend.Open(id)
	current := &entry[W]{
		workspace: m.cfg.Build(id, storage),
		storage:   storage,
		lastSeen:  now,
	}
	m.sessions[id] = current

	m.cfg.Logger.Debug("session_started", slog.String("session_id", id))
	return current.workspace, id, true
}

// End releases the workspace and clears the storage of session id.
// Ending an unknown session is a no-op.
func (m *Manager[W]) End(ctx context.Context, id string) error {
	m.mu.Lock()
	current, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return m.release(ctx, id, current)
}

// Len reports the number of live sessions.
func (m *Manager[W]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep ends every session idle for longer than IdleTTL and returns how many ended.
func (m *Manager[W]) Sweep(ctx context.Context) int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}

	now := m.cfg.Clock()
	expired := make(map[string]*entry[W])

	m.mu.Lock()
	for id, current := range m.sessions {
		if now.Sub(current.lastSeen) > m.cfg.IdleTTL {
			expired[id] = current
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for id, current := range expired {
		if err := m.release(ctx, id, current); err != nil {
			m.cfg.Logger.Warn("session_clear_failed", slog.String("session_id", id), slog.Any("error", err))
		}
	}
	return len(expired)
}

// Janitor sweeps idle sessions every interval until ctx is cancelled.
func (m *Manager[W]) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				m.cfg.Logger.Info("sessions_expired", slog.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Shutdown ends every live session.
func (m *Manager[W]) Shutdown(ctx context.Context) {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*entry[W])
	m.mu.Unlock()

	for id, current := range all {
		if err := m.release(ctx, id, current); err != nil {
			m.cfg.Logger.Warn("session_clear_failed", slog.String("session_id", id), slog.Any("error", err))
		}
	}
}

func (m *Manager[W]) release(ctx context.Context, id string, current *entry[W]) error {
	if m.cfg.Release != nil {
		m.cfg.Release(current.workspace)
	}
	if err := current.storage.ClearAll(ctx); err != nil {
		return fmt.Errorf("session: end %s: %w", id, err)
	}
	m.cfg.Logger.Debug("session_ended", slog.String("session_id", id))
	return nil
}
