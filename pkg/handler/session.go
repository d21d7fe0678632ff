package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/mbdash/pkg/model"
)

const SessionCookie = "mbdash_session"

// Session is the per-browser state: which metadata file is loaded. Uploaded
// tables live in the UploadStore under the session ID.
type Session struct {
	ID           string
	Metadata     *model.Metadata
	MetadataName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionManager stores sessions indexed by ID.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// NewSession registers an empty session.
func (m *SessionManager) NewSession() *Session {
	return m.register(generateSessionID())
}

func (m *SessionManager) register(id string) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get returns a snapshot of the session.
func (m *SessionManager) Get(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// SetMetadata replaces the session's metadata table.
func (m *SessionManager) SetMetadata(id, name string, md *model.Metadata) {
	m.updateSession(id, func(s *Session) {
		s.Metadata = md
		s.MetadataName = name
	})
}

// Clear forgets the session.
func (m *SessionManager) Clear(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// FromRequest resolves the session cookie, starting a new session (and
// setting the cookie) when there is none. A well-formed ID the manager does
// not know, e.g. after a restart with a file-backed store, is adopted so its
// uploads stay reachable.
func (m *SessionManager) FromRequest(w http.ResponseWriter, r *http.Request) Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if s, ok := m.Get(c.Value); ok {
			return s
		}
		if _, err := uuid.Parse(c.Value); err == nil {
			return *m.register(c.Value)
		}
	}

	s := m.NewSession()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return *s
}

// expireCookie removes the session cookie from the browser.
func expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (m *SessionManager) updateSession(id string, update func(s *Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return
	}

	update(s)
	s.UpdatedAt = time.Now()
}

func generateSessionID() string {
	return uuid.NewString()
}
