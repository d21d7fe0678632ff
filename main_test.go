package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/handler"
)

func TestRouterServesHealthAndRejectsUnknownPaths(t *testing.T) {
	tables, err := handler.NewTableCache(4)
	require.NoError(t, err)
	app := &handler.AppContext{
		Store:          db.NewMemoryStore(),
		Tables:         tables,
		Sessions:       handler.NewSessionManager(),
		MaxUploadBytes: 1 << 20,
	}
	mux := NewRouter(app, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"health":"ok"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"addr", "static", "store", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, VERSION, cmd.Version)
}
