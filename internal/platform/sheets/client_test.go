// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package sheets_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/sheets"
)

type captured struct {
	method string
	query  url.Values
	form   url.Values
}

// fakeStore answers every request with body and records what it received.
func fakeStore(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	seen := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.query = r.URL.Query()
		raw, _ := io.ReadAll(r.Body)
		seen.form, _ = url.ParseQuery(string(raw))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, seen
}

func projectsClient(endpoint string) *sheets.Client {
	return sheets.New(sheets.Dataset{
		Name:       "projects",
		Endpoint:   endpoint,
		Style:      sheets.FormPost,
		Convention: sheets.StatusField,
	}, sheets.WithMetrics(metrics.New()))
}

func leadsClient(endpoint string) *sheets.Client {
	return sheets.New(sheets.Dataset{
		Name:       "leads",
		Endpoint:   endpoint,
		Style:      sheets.QueryGet,
		Convention: sheets.SuccessFlag,
	})
}

/*
TestClient_DeleteFormPost sends the url-encoded delete action.
*/
func TestClient_DeleteFormPost(t *testing.T) {
	server, seen := fakeStore(t, http.StatusOK, `{"status":"success"}`)

	err := projectsClient(server.URL).Delete(context.Background(), "17")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "delete", seen.form.Get("action"))
	assert.Equal(t, "17", seen.form.Get("id"))
}

/*
TestClient_QueryGet puts the action in the query string for the leads deployment.
*/
func TestClient_QueryGet(t *testing.T) {
	server, seen := fakeStore(t, http.StatusOK, `{"success":true}`)
	client := leadsClient(server.URL)

	require.NoError(t, client.SetStatus(context.Background(), "42", "enabled"))
	assert.Equal(t, http.MethodGet, seen.method)
	assert.Equal(t, "update", seen.query.Get("action"))
	assert.Equal(t, "42", seen.query.Get("id"))
	assert.Equal(t, "enabled", seen.query.Get("status"))

	require.NoError(t, client.Delete(context.Background(), "42"))
	assert.Equal(t, "delete", seen.query.Get("action"))
}

/*
TestClient_ErrorTaxonomy maps every failure mode onto the two upstream codes.
*/
func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		convention sheets.Convention
		status     int
		body       string
		code       string
		message    string
	}{
		{"status_rejected_with_message", sheets.StatusField, 200, `{"status":"error","message":"Row not found"}`, "UPSTREAM_REJECTED", "Row not found"},
		{"status_rejected_without_message", sheets.StatusField, 200, `{"status":"error"}`, "UPSTREAM_REJECTED", apperr.GenericFailure},
		{"success_flag_false", sheets.SuccessFlag, 200, `{"success":false,"message":"Locked"}`, "UPSTREAM_REJECTED", "Locked"},
		{"missing_status_field", sheets.StatusField, 200, `{"success":true}`, "UPSTREAM_BAD_RESPONSE", ""},
		{"missing_success_flag", sheets.SuccessFlag, 200, `{"status":"success"}`, "UPSTREAM_BAD_RESPONSE", ""},
		{"html_body", sheets.StatusField, 200, `<html>quota</html>`, "UPSTREAM_BAD_RESPONSE", ""},
		{"server_error", sheets.StatusField, 500, `{"status":"success"}`, "UPSTREAM_BAD_RESPONSE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := fakeStore(t, tt.status, tt.body)
			client := sheets.New(sheets.Dataset{Name: "test", Endpoint: server.URL, Convention: tt.convention})

			err := client.Delete(context.Background(), "1")
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

/*
TestClient_TransportFailure reports an unreachable endpoint as upstream unavailable.
*/
func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	err := projectsClient(endpoint).Delete(context.Background(), "1")
	assert.True(t, apperr.HasCode(err, "UPSTREAM_UNAVAILABLE"))
}

/*
TestClient_Timeout bounds slow responses.
*/
func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	client := sheets.New(sheets.Dataset{Name: "slow", Endpoint: server.URL}, sheets.WithTimeout(50*time.Millisecond))
	_, err := client.List(context.Background())
	assert.True(t, apperr.HasCode(err, "UPSTREAM_UNAVAILABLE"))
}

/*
TestClient_Create returns the id assigned by the store.
*/
func TestClient_Create(t *testing.T) {
	server, seen := fakeStore(t, http.StatusOK, `{"status":"success","id":31}`)

	id, err := projectsClient(server.URL).Create(context.Background(), map[string]string{
		"heading": "Sales",
		"ctg":     "EXCEL",
	})
	require.NoError(t, err)
	assert.Equal(t, "31", id)
	assert.Equal(t, "Sales", seen.form.Get("heading"))
	assert.Empty(t, seen.form.Get("action"))
}

/*
TestFetch decodes the list and reports decode errors as bad responses.
*/
func TestFetch(t *testing.T) {
	decode := func(body []byte) ([]string, error) {
		if string(body) != `["a","b"]` {
			return nil, assert.AnError
		}
		return []string{"a", "b"}, nil
	}

	server, seen := fakeStore(t, http.StatusOK, `["a","b"]`)
	items, err := sheets.Fetch(context.Background(), projectsClient(server.URL), decode)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, http.MethodGet, seen.method)

	broken, _ := fakeStore(t, http.StatusOK, `{"error":"quota"}`)
	_, err = sheets.Fetch(context.Background(), projectsClient(broken.URL), decode)
	assert.True(t, apperr.HasCode(err, "UPSTREAM_BAD_RESPONSE"))
}
