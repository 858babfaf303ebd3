package persist

import (
	"sync"

	"github.com/darasahq/ubao/core"
)

// MemoryStore is the in-process twin of FileStore, for tests and throwaway
// sessions.
type MemoryStore struct {
	mutex      sync.Mutex
	selections map[core.Role]core.Selection
}

var _ core.SelectionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{selections: make(map[core.Role]core.Selection)}
}

func (s *MemoryStore) Load(role core.Role) (core.Selection, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selections[role], nil
}

func (s *MemoryStore) Save(role core.Role, sel core.Selection) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.selections[role] = sel
	return nil
}
