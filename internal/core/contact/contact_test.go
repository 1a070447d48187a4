// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package contact_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/core/contact"
	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_Send validates locally and relays the expected payload.
*/
func TestService_Send(t *testing.T) {
	tests := []struct {
		name    string
		idea    contact.Idea
		status  int
		code    string
		relayed bool
	}{
		{"sent", contact.Idea{Name: "Ravi", Email: "ravi@example.com", Idea: "Churn model"}, http.StatusOK, "", true},
		{"missing idea", contact.Idea{Name: "Ravi", Email: "ravi@example.com"}, http.StatusOK, "VALIDATION_ERROR", false},
		{"bad email", contact.Idea{Name: "Ravi", Email: "ravi@example", Idea: "x"}, http.StatusOK, "VALIDATION_ERROR", false},
		{"relay failure", contact.Idea{Name: "Ravi", Email: "ravi@example.com", Idea: "x"}, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				calls   atomic.Int32
				payload map[string]string
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success":"true"}`))
			}))
			t.Cleanup(server.Close)

			service := contact.NewService(server.URL, time.Second, discard())
			err := service.Send(context.Background(), tt.idea)

			if tt.code == "" {
				require.NoError(t, err)
			} else {
				assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			}

			if !tt.relayed {
				assert.Zero(t, calls.Load())
				return
			}
			require.EqualValues(t, 1, calls.Load())
			assert.Equal(t, map[string]string{
				"Name":      tt.idea.Name,
				"Email":     tt.idea.Email,
				"Idea":      tt.idea.Idea,
				"_subject":  "New Project Idea Submission",
				"_template": "table",
			}, payload)
		})
	}
}

/*
TestService_Send_Unreachable maps transport failures to Upstream.
*/
func TestService_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	service := contact.NewService(url, time.Second, discard())
	err := service.Send(context.Background(), contact.Idea{Name: "a", Email: "a@b.io", Idea: "c"})
	assert.True(t, apperr.HasCode(err, "UPSTREAM_UNAVAILABLE"))
}

/*
TestHandler_SendIdea answers 202 on success and 400 on invalid input.
*/
func TestHandler_SendIdea(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	router := chi.NewRouter()
	router.Route("/contact", contact.NewHandler(contact.NewService(server.URL, time.Second, discard())).RegisterRoutes)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"accepted", `{"name":"Ravi","email":"ravi@example.com","idea":"Forecasting"}`, http.StatusAccepted},
		{"invalid", `{"name":"Ravi"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
