// Package chat holds per-user conversation state and schedules the assistant's
// delayed replies.
package chat

import (
	"sync"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Session is the explicit state container for one user: the place they
// selected, its resolved record, their conversation log, and any reply still
// waiting to be delivered.
type Session struct {
	ID  string
	Log *domain.ConversationLog

	mu         sync.Mutex
	city       string
	region     string
	resolution insight.Resolution
	pending    clockwork.Timer
	generation uint64
}

// NewSession creates an empty session with a random ID.
func NewSession() *Session {
	return &Session{
		ID:  uuid.NewString(),
		Log: &domain.ConversationLog{},
	}
}

// Select records the user's chosen place and its resolution. A miss clears any
// previously resolved record.
func (s *Session) Select(city, region string, res insight.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city, s.region = city, region
	s.resolution = res
}

// Selection returns the raw city and region last entered.
func (s *Session) Selection() (city, region string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city, s.region
}

// Resolution returns the resolution for the selected place.
func (s *Session) Resolution() insight.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolution
}

// Pending reports whether an assistant reply is scheduled but not yet delivered.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Sessions is a concurrency-safe registry of sessions by ID.
type Sessions struct {
	mu   sync.RWMutex
	byID map[string]*Session
}

// NewSessions creates an empty registry.
func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*Session)}
}

// Create registers and returns a new session.
func (r *Sessions) Create() *Session {
	s := NewSession()
	r.mu.Lock()
	r.byID[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}
