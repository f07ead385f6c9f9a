package query

import (
	"sync"

	"filecabinet/record"
)

// Memo caches evaluated results by Predicate.Key.
// Owners must call Clear after every mutation of the underlying records.
type Memo struct {
	mu      sync.RWMutex
	entries map[string][]record.Record
	hits    uint64
	misses  uint64
}

// NewMemo creates an empty memo
func NewMemo() *Memo {
	return &Memo{entries: make(map[string][]record.Record)}
}

// Get returns a copy of the cached result for key
func (m *Memo) Get(key string) ([]record.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cached, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}
	m.hits++
	return append([]record.Record(nil), cached...), true
}

// Put stores a copy of records under key
func (m *Memo) Put(key string, records []record.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]record.Record(nil), records...)
}

// Clear drops every cached result
func (m *Memo) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
}

// Len returns the number of cached results
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats returns the lookup hit and miss counts
func (m *Memo) Stats() (hits, misses uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}
