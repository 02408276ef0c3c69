package server

import (
	"sync"

	"github.com/SGrimsley02/sweeper/internal/game"
)

// Entry wraps one live session. Its mutex is what serializes turns:
// the engine requires one invocation at a time per committed board, and
// handlers take the lock for the whole turn.
type Entry struct {
	sync.Mutex
	Session *game.Session
}

// Store keeps live sessions in memory. Games do not survive restarts
// on purpose.
type Store struct {
	mu      sync.Mutex
	nextId  int
	entries map[int]*Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int]*Entry)}
}

func (s *Store) Add(sess *game.Session) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	s.entries[s.nextId] = &Entry{Session: sess}
	return s.nextId
}

func (s *Store) Get(id int) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *Store) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}
