package handler

// DI for all handlers.

import (
	"github.com/yumyai/mbdash/pkg/db"
)

type AppContext struct {
	Store          db.UploadStore
	Tables         *TableCache
	Sessions       *SessionManager
	MaxUploadBytes int64
}
