// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package objectstore_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/platform/objectstore"
)

type upload struct {
	method      string
	path        string
	contentType string
	body        string
}

/*
TestStore_Put sends a path-style PUT to the configured endpoint.
*/
func TestStore_Put(t *testing.T) {
	var (
		mu       sync.Mutex
		received []upload
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		received = append(received, upload{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	store, err := objectstore.New(context.Background(), objectstore.Config{
		Bucket:          "reports",
		Region:          "auto",
		Endpoint:        server.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		PathStyle:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "reports", store.Bucket())

	err = store.Put(context.Background(), "reports/2026/10/project_report-1.csv", []byte("ID\n1\n"), "text/csv")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, http.MethodPut, received[0].method)
	assert.Equal(t, "/reports/reports/2026/10/project_report-1.csv", received[0].path)
	assert.Equal(t, "text/csv", received[0].contentType)
	assert.Contains(t, received[0].body, "ID")
}

/*
TestNew_RequiresBucket refuses an empty bucket name.
*/
func TestNew_RequiresBucket(t *testing.T) {
	_, err := objectstore.New(context.Background(), objectstore.Config{})
	assert.Error(t, err)
}
