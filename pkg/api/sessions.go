package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/yourusername/gomoku/pkg/engine"
)

// DefaultMaxSessions caps the registry when no limit is configured.
const DefaultMaxSessions = 1024

// ErrTooManySessions is returned by Create when the registry is full.
var ErrTooManySessions = errors.New("api: session limit reached")

// Session owns one game. The engine is single-threaded by design; the
// session mutex is the unit of serialization for callers arriving over
// HTTP and WebSocket concurrently.
type Session struct {
	ID      string
	created time.Time

	mu   sync.Mutex
	game *engine.Game
}

// Apply runs fn with exclusive access to the session's game.
func (s *Session) Apply(fn func(g *engine.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// SessionStore is a bounded in-memory registry of sessions. Games live
// only here; the single shareable token is the only persistence.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	created  int64 // total sessions ever created
}

// NewSessionStore creates a registry holding at most max sessions.
// Non-positive max means DefaultMaxSessions.
func NewSessionStore(max int) *SessionStore {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		max:      max,
	}
}

// Create registers a new session owning g.
func (st *SessionStore) Create(g *engine.Game) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.max {
		return nil, ErrTooManySessions
	}

	id := newSessionID()
	for st.sessions[id] != nil {
		id = newSessionID()
	}

	s := &Session{ID: id, created: time.Now(), game: g}
	st.sessions[id] = s
	st.created++
	return s, nil
}

// Get looks up a session by ID.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session, reporting whether it existed.
func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// StoreStats is a snapshot of registry counters.
type StoreStats struct {
	Active  int   `json:"active"`  // Sessions currently registered
	Created int64 `json:"created"` // Sessions ever created
	Max     int   `json:"max"`     // Registry capacity
}

// Stats returns current registry statistics.
func (st *SessionStore) Stats() StoreStats {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return StoreStats{
		Active:  len(st.sessions),
		Created: st.created,
		Max:     st.max,
	}
}

func newSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("api: session ID entropy unavailable")
	}
	return hex.EncodeToString(b[:])
}
