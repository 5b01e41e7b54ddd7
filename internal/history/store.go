// Package history holds the in-memory outage record window that the
// analytics endpoints read from.
package history

import (
	"sync"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// Store is a bounded, append-only record window. When the bound is reached
// the oldest records are dropped. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []domain.OutageRecord
	max     int
}

// NewStore returns a store keeping at most max records. A max of zero or
// below means unbounded.
func NewStore(max int) *Store {
	return &Store{max: max}
}

// Append adds records in order, evicting from the front when over the bound.
func (s *Store) Append(records ...domain.OutageRecord) {
	if len(records) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
	if s.max > 0 && len(s.records) > s.max {
		drop := len(s.records) - s.max
		s.records = append(s.records[:0], s.records[drop:]...)
	}
}

// Snapshot returns a copy of the current window, oldest first.
func (s *Store) Snapshot() []domain.OutageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.OutageRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
