package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no session exists for an id.
	ErrNotFound = errors.New("session not found")
)

// entry holds the latest snapshot of one session.
type entry struct {
	state    weather.State
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.Mutex

	// key: session id
	data map[string]*entry

	// retention configuration
	maxSessions int           // max number of live sessions
	maxAge      time.Duration // idle time after which Prune drops a session

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Save stores a new session snapshot, evicting the least recently used
// session when the store is full.
func (s *MemoryStore) Save(state weather.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[state.SessionID]; !exists && s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.data[state.SessionID] = &entry{state: state, lastSeen: s.now()}
}

// Get returns the latest snapshot of a session.
func (s *MemoryStore) Get(id string) (weather.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return weather.State{}, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.state, nil
}

// Update applies fn to the session snapshot under the store lock. When fn
// fails the stored snapshot is kept and returned alongside the error.
func (s *MemoryStore) Update(id string, fn func(weather.State) (weather.State, error)) (weather.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return weather.State{}, ErrNotFound
	}
	e.lastSeen = s.now()

	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}
	e.state = next
	return next, nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// Prune drops sessions idle for longer than maxAge and reports how many were removed.
func (s *MemoryStore) Prune() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for id, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.data {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.data, oldestID)
	}
}
