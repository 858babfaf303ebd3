package board

import "sync"

// Store is the client-local cache of questions for exactly one lecture at a
// time, and the single source of truth for rendering. Replace is the only
// mutator: every refresh is a full overwrite, so the cache can never end up
// in a partially-applied state.
type Store struct {
	mutex     sync.RWMutex
	questions []Question
}

func NewStore() *Store {
	return &Store{}
}

// Replace overwrites the whole collection with newSet. Ordering is
// server-determined; the store does not re-sort.
func (s *Store) Replace(newSet []Question) {
	questions := make([]Question, len(newSet))
	copy(questions, newSet)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.questions = questions
}

// Clear empties the store. Called when the active lecture changes so a
// stale board is never shown against the new lecture.
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.questions = nil
}

// Questions returns a snapshot copy of the current collection.
func (s *Store) Questions() []Question {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	questions := make([]Question, len(s.questions))
	copy(questions, s.questions)
	return questions
}

func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.questions)
}
