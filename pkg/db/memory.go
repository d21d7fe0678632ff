package db

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps uploads in process memory, indexed by session.
type MemoryStore struct {
	mu      sync.RWMutex
	uploads map[string][]*Upload
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[string][]*Upload),
	}
}

func (m *MemoryStore) Put(_ context.Context, u Upload) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.uploads[u.Session] {
		if existing.Name == u.Name {
			return false, nil
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.Data = append([]byte(nil), u.Data...)
	m.uploads[u.Session] = append(m.uploads[u.Session], &u)
	return true, nil
}

func (m *MemoryStore) Get(_ context.Context, session, name string) (*Upload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.uploads[session] {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUploadNotFound
}

func (m *MemoryStore) List(_ context.Context, session string) ([]UploadInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]UploadInfo, 0, len(m.uploads[session]))
	for _, u := range m.uploads[session] {
		out = append(out, UploadInfo{Name: u.Name, Size: int64(len(u.Data)), CreatedAt: u.CreatedAt})
	}
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context, session string) error {
	m.mu.Lock()
	delete(m.uploads, session)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
