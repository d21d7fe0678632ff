package handler

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yumyai/mbdash/logger"
	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/middle"
	"github.com/yumyai/mbdash/pkg/model"
	"go.uber.org/zap"
)

// TableCache memoises parsed uploads. Cached tables are shared between
// requests and must not be mutated; every model transform returns a copy.
type TableCache struct {
	tables *lru.Cache[string, *model.LoadedTable]
}

func NewTableCache(size int) (*TableCache, error) {
	c, err := lru.New[string, *model.LoadedTable](size)
	if err != nil {
		return nil, fmt.Errorf("table cache: %w", err)
	}
	return &TableCache{tables: c}, nil
}

func cacheKey(session, name string) string {
	return session + "\x00" + name
}

// Load returns the parsed table for an upload, reading and parsing it on a
// miss.
func (c *TableCache) Load(ctx context.Context, store db.UploadStore, session, name string) (*model.LoadedTable, error) {
	key := cacheKey(session, name)
	if lt, ok := c.tables.Get(key); ok {
		return lt, nil
	}

	u, err := store.Get(ctx, session, name)
	if err != nil {
		return nil, err
	}
	lt, err := model.LoadTable(u.Data, u.Name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	middle.FromContext(ctx, logger.L()).Debug("Parsed table",
		zap.String("file", name),
		zap.String("kind", lt.Kind.String()),
		zap.Int("rows", lt.Table.NRows()),
		zap.Int("columns", lt.Table.NCols()),
	)
	c.tables.Add(key, lt)
	return lt, nil
}

// Forget drops every cached table of a session.
func (c *TableCache) Forget(session string) {
	prefix := cacheKey(session, "")
	for _, k := range c.tables.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.tables.Remove(k)
		}
	}
}

func (c *TableCache) Len() int { return c.tables.Len() }
