// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
)

/*
TestMetrics_Exposition verifies recorded samples appear on the handler output.
*/
func TestMetrics_Exposition(t *testing.T) {
	m := metrics.New()
	m.ObserveRemote("projects", "list", metrics.OutcomeSuccess, 120*time.Millisecond)
	m.CacheLoad("projects", "hit")
	m.Mutation("leads", "set_status", metrics.OutcomeRejected)
	m.HTTPRequest(http.MethodGet, "/api/v1/projects", http.StatusOK)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `showcase_remote_requests_total{dataset="projects",operation="list",outcome="success"} 1`)
	assert.Contains(t, text, `showcase_cache_loads_total{dataset="projects",result="hit"} 1`)
	assert.Contains(t, text, `showcase_mutations_total{action="set_status",dataset="leads",outcome="rejected"} 1`)
	assert.Contains(t, text, `showcase_http_requests_total{method="GET",route="/api/v1/projects",status="2xx"} 1`)
}

/*
TestMetrics_NilReceiver keeps optional metrics wiring safe.
*/
func TestMetrics_NilReceiver(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveRemote("projects", "list", metrics.OutcomeFailure, time.Second)
		m.CacheLoad("projects", "miss")
		m.Mutation("projects", "delete", metrics.OutcomeSuccess)
		m.HTTPRequest(http.MethodGet, "/", http.StatusOK)
	})
}

/*
TestMetrics_Independent checks two instances do not share state.
*/
func TestMetrics_Independent(t *testing.T) {
	first := metrics.New()
	second := metrics.New()
	first.CacheLoad("leads", "miss")

	count, err := testutil.GatherAndCount(second.Registry(), "showcase_cache_loads_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}
