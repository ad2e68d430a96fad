package memory

import (
	"log"
	"sort"
	"sync"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

type entry struct {
	mu      sync.Mutex // serializes every operation on this one game
	session domain.GameSession
}

// SessionStore keeps every game in process memory. Each game has its own lock,
// so work on one id never waits on another; the index lock is only held to find
// or insert an entry.
//
// Nothing is ever evicted: the store grows until Close.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entry),
	}
}

func (s *SessionStore) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	return e, ok
}

// Create inserts a new game. It fails if the id is already taken.
func (s *SessionStore) Create(id string, session domain.GameSession) error {
	if id == "" || session.ID != id {
		return domain.ErrCorruptSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return domain.ErrSessionExists
	}
	s.sessions[id] = &entry{session: session}

	log.Printf("[SESSION] Created session %s (opponent: %s)", id, session.Opponent)
	return nil
}

// Get returns a copy of the stored game.
func (s *SessionStore) Get(id string) (domain.GameSession, bool) {
	e, ok := s.lookup(id)
	if !ok {
		return domain.GameSession{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, true
}

// Save upserts session by its ID.
func (s *SessionStore) Save(session domain.GameSession) error {
	if session.ID == "" {
		return domain.ErrCorruptSession
	}

	e, ok := s.lookup(session.ID)
	if !ok {
		s.mu.Lock()
		e, ok = s.sessions[session.ID]
		if !ok {
			e = &entry{}
			s.sessions[session.ID] = e
		}
		s.mu.Unlock()
	}

	e.mu.Lock()
	e.session = session
	e.mu.Unlock()
	return nil
}

// Update runs fn on a copy of the game while holding that game's lock and stores
// the copy only if fn succeeds. A failing fn leaves the stored game as it was.
func (s *SessionStore) Update(id string, fn func(session *domain.GameSession) error) (domain.GameSession, error) {
	e, ok := s.lookup(id)
	if !ok {
		return domain.GameSession{}, domain.ErrSessionMissing
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.session
	if err := fn(&working); err != nil {
		return e.session, err
	}
	if working.ID != id {
		return e.session, domain.ErrCorruptSession
	}

	e.session = working
	return working, nil
}

// List returns copies of all games ordered by creation time.
func (s *SessionStore) List() []domain.GameSession {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]domain.GameSession, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.session)
		e.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close drops every game. It is the only way sessions leave the store.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.sessions)
	s.sessions = make(map[string]*entry)
	log.Printf("[SESSION] Store closed, dropped %d sessions", count)
}
