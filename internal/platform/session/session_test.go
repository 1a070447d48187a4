// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package session_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/platform/session"
	"github.com/aanchalalytcs/showcase/pkg/uuid"
)

/*
TestMemory_Contract exercises get/set/clear on the in-memory storage.
*/
func TestMemory_Contract(t *testing.T) {
	exerciseStorage(t, session.NewMemory())
}

/*
TestRedis_Contract runs the same contract against a live Redis.
Set REDIS_TEST_URL to enable it.
*/
func TestRedis_Contract(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	options, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })

	scope := session.NewRedisBackend(client, time.Minute).Open(uuid.New())
	exerciseStorage(t, scope)
}

func exerciseStorage(t *testing.T, storage session.Scoped) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := storage.Get(ctx, "projects")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Set(ctx, "projects", []byte(`[1,2]`)))
	require.NoError(t, storage.Set(ctx, "leads", []byte(`[3]`)))

	value, ok, err := storage.Get(ctx, "projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(value))

	require.NoError(t, storage.Clear(ctx, "projects"))
	require.NoError(t, storage.Clear(ctx, "missing"))
	_, ok, _ = storage.Get(ctx, "projects")
	assert.False(t, ok)

	require.NoError(t, storage.ClearAll(ctx))
	_, ok, _ = storage.Get(ctx, "leads")
	assert.False(t, ok)
}

/*
TestMemory_CopiesValues ensures callers cannot mutate stored bytes.
*/
func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	memory := session.NewMemory()

	value := []byte("abc")
	require.NoError(t, memory.Set(ctx, "k", value))
	value[0] = 'z'

	stored, _, _ := memory.Get(ctx, "k")
	assert.Equal(t, "abc", string(stored))
	assert.Equal(t, []string{"k"}, memory.Keys())
}

type workspace struct {
	id       string
	storage  session.Scoped
	released bool
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newManager(clock *fakeClock) *session.Manager[*workspace] {
	return session.NewManager(session.ManagerConfig[*workspace]{
		Backend: session.MemoryBackend{},
		Build: func(id string, storage session.Scoped) *workspace {
			return &workspace{id: id, storage: storage}
		},
		Release: func(w *workspace) { w.released = true },
		IdleTTL: 30 * time.Minute,
		Clock:   clock.Now,
	})
}

/*
TestManager_Acquire reuses known sessions and replaces malformed ids.
*/
func TestManager_Acquire(t *testing.T) {
	manager := newManager(&fakeClock{now: time.Now()})

	first, id, created := manager.Acquire("")
	assert.True(t, created)
	assert.True(t, uuid.Valid(id))

	again, sameID, created := manager.Acquire(id)
	assert.False(t, created)
	assert.Equal(t, id, sameID)
	assert.Same(t, first, again)

	_, replaced, created := manager.Acquire("not-a-uuid")
	assert.True(t, created)
	assert.NotEqual(t, "not-a-uuid", replaced)
	assert.Equal(t, 2, manager.Len())
}

/*
TestManager_End releases the workspace and clears its storage.
*/
func TestManager_End(t *testing.T) {
	ctx := context.Background()
	manager := newManager(&fakeClock{now: time.Now()})

	w, id, _ := manager.Acquire("")
	require.NoError(t, w.storage.Set(ctx, "projects", []byte("[]")))

	require.NoError(t, manager.End(ctx, id))
	assert.True(t, w.released)
	_, ok, _ := w.storage.Get(ctx, "projects")
	assert.False(t, ok)
	assert.Zero(t, manager.Len())

	assert.NoError(t, manager.End(ctx, id))
}

/*
TestManager_Sweep ends only sessions idle past the TTL.
*/
func TestManager_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	manager := newManager(clock)

	stale, _, _ := manager.Acquire("")
	clock.Advance(20 * time.Minute)
	fresh, freshID, _ := manager.Acquire("")
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, manager.Sweep(context.Background()))
	assert.True(t, stale.released)
	assert.False(t, fresh.released)

	_, _, created := manager.Acquire(freshID)
	assert.False(t, created)
}

/*
TestManager_Shutdown ends every session.
*/
func TestManager_Shutdown(t *testing.T) {
	manager := newManager(&fakeClock{now: time.Now()})
	a, _, _ := manager.Acquire("")
	b, _, _ := manager.Acquire("")

	manager.Shutdown(context.Background())
	assert.True(t, a.released)
	assert.True(t, b.released)
	assert.Zero(t, manager.Len())
}
