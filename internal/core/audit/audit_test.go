// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package audit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/core/audit"
	"github.com/aanchalalytcs/showcase/internal/core/mutation"
	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/migration"
	"github.com/aanchalalytcs/showcase/internal/platform/postgres"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
	"github.com/aanchalalytcs/showcase/pkg/uuid"
)

type memoryRepository struct {
	mu      sync.Mutex
	entries []audit.Entry
	err     error
}

func (m *memoryRepository) Insert(_ context.Context, entry audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryRepository) List(_ context.Context, filter audit.Filter, page pagination.Params) ([]audit.Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []audit.Entry{}
	for _, entry := range slices.Backward(m.entries) {
		if filter.Dataset != "" && entry.Dataset != filter.Dataset {
			continue
		}
		if filter.EntityID != "" && entry.EntityID != filter.EntityID {
			continue
		}
		matched = append(matched, entry)
	}
	start, end := page.Bounds(len(matched))
	return matched[start:end], len(matched), nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event(dataset, id, outcome string) mutation.Event {
	return mutation.Event{
		Dataset:   dataset,
		Action:    mutation.ActionDelete,
		EntityID:  id,
		Outcome:   outcome,
		SessionID: "s-1",
		At:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

/*
TestService_Record stores one entry per event with a fresh id.
*/
func TestService_Record(t *testing.T) {
	repository := &memoryRepository{}
	service := audit.NewService(repository, discard())
	ctx := context.Background()

	require.True(t, service.Enabled())
	require.NoError(t, service.Record(ctx, event("projects", "7", "success")))
	require.NoError(t, service.Record(ctx, event("leads", "9", "rejected")))

	require.Len(t, repository.entries, 2)
	first := repository.entries[0]
	assert.True(t, uuid.Valid(first.ID))
	assert.Equal(t, "projects", first.Dataset)
	assert.Equal(t, "7", first.EntityID)
	assert.Equal(t, "s-1", first.SessionID)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), first.CreatedAt)
	assert.NotEqual(t, first.ID, repository.entries[1].ID)

	repository.err = apperr.Internal(errors.New("disk full"))
	assert.Error(t, service.Record(ctx, event("projects", "8", "success")))
}

/*
TestService_Disabled drops events and refuses listings.
*/
func TestService_Disabled(t *testing.T) {
	service := audit.NewService(nil, discard())

	assert.False(t, service.Enabled())
	assert.NoError(t, service.Record(context.Background(), event("projects", "1", "success")))

	_, _, err := service.List(context.Background(), audit.Filter{}, pagination.Params{Page: 1, Limit: 10})
	assert.True(t, apperr.HasCode(err, "SERVICE_UNAVAILABLE"))
}

/*
TestHandler_ListEntries pages newest first and filters by dataset.
*/
func TestHandler_ListEntries(t *testing.T) {
	repository := &memoryRepository{}
	service := audit.NewService(repository, discard())
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, service.Record(context.Background(), event("projects", id, "success")))
	}
	require.NoError(t, service.Record(context.Background(), event("leads", "4", "success")))

	router := chi.NewRouter()
	router.Route("/audit", audit.NewHandler(service).RegisterRoutes)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"first page", "/audit?limit=2", `"total":4`},
		{"dataset filter", "/audit?dataset=projects", `"total":3`},
		{"entity filter", "/audit?entity_id=4", `"entity_id":"4"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.want)
		})
	}

	disabled := chi.NewRouter()
	disabled.Route("/audit", audit.NewHandler(audit.NewService(nil, discard())).RegisterRoutes)
	recorder := httptest.NewRecorder()
	disabled.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/audit", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

/*
TestPostgresRepository runs against a real database when DATABASE_TEST_URL is set.
*/
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_TEST_URL")
	if dsn == "" {
		t.Skip("DATABASE_TEST_URL not set")
	}
	ctx := context.Background()

	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", discard()))
	pool, err := postgres.NewPool(ctx, dsn, discard())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE moderation_audit")
	require.NoError(t, err)

	repository := audit.NewPostgresRepository(pool)
	service := audit.NewService(repository, discard())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		e := event("projects", id, "success")
		e.At = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, service.Record(ctx, e))
	}
	require.NoError(t, service.Record(ctx, event("leads", "9", "rejected")))

	entries, total, err := repository.List(ctx, audit.Filter{Dataset: "projects"}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "3", entries[0].EntityID)
	assert.Equal(t, "2", entries[1].EntityID)

	entries, total, err = repository.List(ctx, audit.Filter{EntityID: "9"}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "rejected", entries[0].Outcome)
}
