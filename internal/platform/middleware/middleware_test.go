// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/platform/constants"
	"github.com/aanchalalytcs/showcase/internal/platform/ctxutil"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/middleware"
)

type corsConfig struct {
	dev    bool
	suffix string
}

func (c corsConfig) IsDevelopment() bool  { return c.dev }
func (c corsConfig) OriginSuffix() string { return c.suffix }

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

/*
TestRequestID keeps a client id and issues one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-1", seen)
}

/*
TestSession resolves the id from header or cookie and echoes it back.
*/
func TestSession(t *testing.T) {
	acquire := func(id string) (string, bool) {
		if id == "known" {
			return id, false
		}
		return "issued", true
	}

	tests := []struct {
		name       string
		header     string
		cookie     string
		want       string
		wantCookie bool
	}{
		{"new session", "", "", "issued", true},
		{"header", "known", "", "known", false},
		{"cookie", "", "known", "known", false},
		{"unknown id replaced", "forged", "", "issued", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.Session(acquire, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = ctxutil.GetSessionID(r.Context())
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderXSessionID, tt.header)
			}
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.cookie})
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, seen)
			assert.Equal(t, tt.want, recorder.Header().Get(constants.HeaderXSessionID))

			cookies := recorder.Result().Cookies()
			if tt.wantCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, tt.want, cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

/*
TestCORS allows development origins and production origins by suffix.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"development", corsConfig{dev: true}, "http://localhost:5173", true},
		{"suffix match", corsConfig{suffix: "vercel.app"}, "https://alytcs.vercel.app", true},
		{"exact host", corsConfig{suffix: "vercel.app"}, "https://vercel.app", true},
		{"label boundary", corsConfig{suffix: "vercel.app"}, "https://evil-vercel.app", false},
		{"other host", corsConfig{suffix: "vercel.app"}, "https://example.com", false},
		{"no suffix configured", corsConfig{}, "https://alytcs.vercel.app", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			middleware.CORS(tt.cfg)(ok).ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://alytcs.vercel.app")
	recorder := httptest.NewRecorder()
	middleware.CORS(corsConfig{suffix: "vercel.app"})(ok).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRateLimit rejects requests beyond the burst.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handler := middleware.RateLimit(ctx)(ok)

	limited := 0
	for range constants.DefaultRateLimitBurst + 5 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.9:4000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "198.51.100.1:4000"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestInstrument labels requests with the chi route pattern.
*/
func TestInstrument(t *testing.T) {
	m := metrics.New()
	router := chi.NewRouter()
	router.Use(middleware.Instrument(m))
	router.Get("/projects/{id}", ok)

	for _, target := range []string{"/projects/1", "/projects/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	count, err := testutil.GatherAndCount(m.Registry(), "showcase_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

/*
TestPanicRecovery answers 500 instead of crashing.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}
