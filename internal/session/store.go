package session

import (
	"sort"
	"sync"

	"leavedesk/internal/logging"
)

// Store is an in-memory session registry keyed by session ID. Sessions are
// created on first touch and live until explicitly cleared.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating it when absent.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = New(id)
	st.sessions[id] = s
	logging.Session("created session %s (total=%d)", id, len(st.sessions))
	return s
}

// Get returns the session for id, or nil when it does not exist.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// List returns all live sessions sorted by ID.
func (st *Store) List() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Clear removes the session for id. Clearing an unknown ID is a no-op, not
// an error.
func (st *Store) Clear(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; ok {
		delete(st.sessions, id)
		logging.Session("cleared session %s (total=%d)", id, len(st.sessions))
	}
}

// ClearAll removes every session and returns how many were dropped.
func (st *Store) ClearAll() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := len(st.sessions)
	st.sessions = make(map[string]*Session)
	logging.Session("cleared all sessions (dropped=%d)", n)
	return n
}
