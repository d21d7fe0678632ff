package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/model"
)

func TestSessionManagerFromRequest(t *testing.T) {
	m := NewSessionManager()

	rec := httptest.NewRecorder()
	s := m.FromRequest(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, s.ID, cookies[0].Value)

	// Known session: reused, no new cookie.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again := m.FromRequest(rec, req)
	assert.Equal(t, s.ID, again.ID)
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionManagerAdoptsUnknownUUID(t *testing.T) {
	m := NewSessionManager()
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	s := m.FromRequest(httptest.NewRecorder(), req)
	assert.Equal(t, id, s.ID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
	s = m.FromRequest(httptest.NewRecorder(), req)
	assert.NotEqual(t, "../../etc", s.ID)
}

func TestSessionManagerMetadata(t *testing.T) {
	m := NewSessionManager()
	s := m.NewSession()
	md := &model.Metadata{IndexName: "sample", Samples: []string{"S1"}, Features: []string{"site"}, Values: [][]string{{"gut"}}}

	m.SetMetadata(s.ID, "meta.csv", md)
	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, "meta.csv", got.MetadataName)
	assert.Same(t, md, got.Metadata)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	m.Clear(s.ID)
	_, ok = m.Get(s.ID)
	assert.False(t, ok)

	// Unknown IDs are ignored.
	m.SetMetadata("missing", "meta.csv", md)
	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestTableCache(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	_, err := store.Put(ctx, db.Upload{Session: "a", Name: "x_pathabundance.tsv", Data: []byte("# Pathway\tS1\nPWY-1\t3\n")})
	require.NoError(t, err)
	_, err = store.Put(ctx, db.Upload{Session: "b", Name: "x_pathabundance.tsv", Data: []byte("# Pathway\tS1\nPWY-2\t4\n")})
	require.NoError(t, err)

	c, err := NewTableCache(4)
	require.NoError(t, err)

	lt, err := c.Load(ctx, store, "a", "x_pathabundance.tsv")
	require.NoError(t, err)
	assert.Equal(t, model.KindPathAbundance, lt.Kind)
	assert.Equal(t, []string{"PWY-1"}, lt.Table.Rows)

	cached, err := c.Load(ctx, store, "a", "x_pathabundance.tsv")
	require.NoError(t, err)
	assert.Same(t, lt, cached)

	other, err := c.Load(ctx, store, "b", "x_pathabundance.tsv")
	require.NoError(t, err)
	assert.Equal(t, []string{"PWY-2"}, other.Table.Rows)
	assert.Equal(t, 2, c.Len())

	c.Forget("a")
	assert.Equal(t, 1, c.Len())

	_, err = c.Load(ctx, store, "a", "missing.tsv")
	assert.ErrorIs(t, err, db.ErrUploadNotFound)

	_, err = NewTableCache(0)
	assert.Error(t, err)
}
