package database

import (
	"sync"

	"github.com/google/uuid"
)

type MemStore struct {
	Checks map[uuid.UUID]*CheckEntry
	mutex  *sync.Mutex
}

func NewMemStore() *MemStore {
	return &MemStore{
		Checks: make(map[uuid.UUID]*CheckEntry),
		mutex:  &sync.Mutex{},
	}
}

func (m *MemStore) SaveCheckEntry(entry *CheckEntry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Checks[entry.Id] = entry
	return nil
}

func (m *MemStore) Entries() []CheckEntry {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entries := make([]CheckEntry, 0, len(m.Checks))
	for _, e := range m.Checks {
		entries = append(entries, *e)
	}
	return entries
}
