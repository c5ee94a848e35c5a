package credential

import "sync"

// Store holds at most one provider key. Set is the only mutation point
// and replaces the previous value in one assignment.
type Store struct {
	mu  sync.RWMutex
	key string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, s.key != ""
}

func (s *Store) Set(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

func (s *Store) IsSet() bool {
	_, ok := s.Get()
	return ok
}
