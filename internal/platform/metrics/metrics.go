// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors are registered on a private registry so tests can build as many
[Metrics] instances as they like without tripping duplicate registration.

Families:

  - showcase_remote_requests_total / showcase_remote_request_duration_seconds:
    every call to the remote record store, by dataset, operation and outcome.
  - showcase_cache_loads_total: cache reads by dataset and result (hit, miss, error).
  - showcase_mutations_total: settled mutations by dataset, action and outcome.
  - showcase_http_requests_total: API traffic by route pattern and status class.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showcase"

// Outcome labels shared by the remote and mutation families.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// Metrics bundles every collector the service updates.
type Metrics struct {
	registry *prometheus.Registry

	remoteRequests *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	cacheLoads     *prometheus.CounterVec
	mutations      *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// New creates and registers the collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Requests issued to the remote record store.",
		}, []string{"dataset", "operation", "outcome"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Latency of remote record store requests.",
			Buckets:   []float64{.1, .25, .5, 1, 2, 4, 8, 15},
		}, []string{"dataset", "operation"}),
		cacheLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_loads_total",
			Help:      "Snapshot loads served by the cache layer.",
		}, []string{"dataset", "result"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Settled delete and status mutations.",
		}, []string{"dataset", "action", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by route pattern and status code class.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.remoteRequests,
		m.remoteDuration,
		m.cacheLoads,
		m.mutations,
		m.httpRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveRemote records one remote record store call. A nil receiver is a no-op.
func (m *Metrics) ObserveRemote(dataset, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.remoteRequests.WithLabelValues(dataset, operation, outcome).Inc()
	m.remoteDuration.WithLabelValues(dataset, operation).Observe(elapsed.Seconds())
}

// CacheLoad records one cache read.
func (m *Metrics) CacheLoad(dataset, result string) {
	if m == nil {
		return
	}
	m.cacheLoads.WithLabelValues(dataset, result).Inc()
}

// Mutation records one settled mutation.
func (m *Metrics) Mutation(dataset, action, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(dataset, action, outcome).Inc()
}

// HTTPRequest records one served API request.
func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status/100)+"xx").Inc()
}
