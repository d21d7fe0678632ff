package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUploadNotFound = errors.New("upload not found")

// Upload is a raw uploaded file owned by one browser session.
type Upload struct {
	Session   string
	Name      string
	Data      []byte
	CreatedAt time.Time
}

// UploadInfo describes an upload without its payload.
type UploadInfo struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// UploadStore keeps the raw bytes of uploaded tables per session. File names
// are append-only: putting a name that already exists in the session is a
// no-op and reports inserted=false.
type UploadStore interface {
	Put(ctx context.Context, u Upload) (inserted bool, err error)
	Get(ctx context.Context, session, name string) (*Upload, error)
	// List returns uploads in insertion order.
	List(ctx context.Context, session string) ([]UploadInfo, error)
	Clear(ctx context.Context, session string) error
	Close() error
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// NewStore opens the upload store named by backend.
func NewStore(ctx context.Context, backend, dsn string) (UploadStore, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return OpenSQLiteStore(ctx, dsn)
	}
	return nil, fmt.Errorf("unknown upload store %q", backend)
}
