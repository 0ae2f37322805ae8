package store

import "sync"

// MemoryStore is an in-process Store, used in tests and for throwaway sessions.
type MemoryStore struct {
	mu  sync.Mutex
	raw *string

	// SaveErr, when set, is returned by Save without storing anything.
	SaveErr error

	saves int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetRaw replaces the stored value verbatim, bypassing encoding.
func (m *MemoryStore) SetRaw(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = &raw
}

// Load returns the saved IDs, or an empty slice when absent or unparsable.
func (m *MemoryStore) Load() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw == nil {
		return []int{}
	}
	ids, err := decode(*m.raw)
	if err != nil {
		return []int{}
	}
	return ids
}

// Save overwrites the saved IDs.
func (m *MemoryStore) Save(ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := encode(ids)
	if err != nil {
		return err
	}
	m.raw = &raw
	m.saves++
	return nil
}

// Clear removes the saved IDs.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = nil
	return nil
}

// Saves reports how many successful Save calls were made.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var _ Store = (*MemoryStore)(nil)
