// Package session provides the session-scoped result store. It is a
// write-once key-value cache: the first table stored under a key wins for
// the lifetime of the process, mirroring compute-once-reuse semantics
// rather than invalidation-aware caching.
package session

import (
	"sort"
	"sync"

	"snowreport/internal/table"
)

// Store maps report keys to cached result tables. It is passed explicitly
// into the code that needs it rather than living in package globals.
type Store struct {
	mu    sync.RWMutex
	items map[string]*table.Table
	stats Stats
}

// Stats tracks store usage counters.
type Stats struct {
	Hits   int64
	Misses int64
	Kept   int64 // writes rejected because the key already existed
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*table.Table)}
}

// Put stores t under key unless the key already holds a value. It returns
// true when the write took effect.
func (s *Store) Put(key string, t *table.Table) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; exists {
		s.stats.Kept++
		return false
	}
	s.items[key] = t
	return true
}

// Get retrieves the table stored under key.
func (s *Store) Get(key string) (*table.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.items[key]
	if ok {
		s.stats.Hits++
	} else {
		s.stats.Misses++
	}
	return t, ok
}

// GetOrCompute returns the cached table for key, computing and storing it on
// a miss. The compute result is stored even when nil so a failed computation
// is not retried within the session.
func (s *Store) GetOrCompute(key string, compute func() *table.Table) *table.Table {
	if t, ok := s.Get(key); ok {
		return t
	}
	t := compute()
	s.Put(key, t)
	return t
}

// Delete removes a key. Interactive runs use it for --no-cache refreshes.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored tables.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats returns a snapshot of the usage counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
