package history

import (
	"sync"

	"github.com/cognisys/mindspace/core"
)

// InMemoryStore is a volatile HistoryStore implementation keeping records in
// a process local slice. It is safe for concurrent access and best suited for
// tests or single-process runs. Returned slices are copies to prevent
// external mutation of internal state.
//
// A positive limit bounds retention: once exceeded, the oldest records are
// discarded. Limit 0 retains everything.
type InMemoryStore struct {
	mu      sync.RWMutex
	limit   int
	records []core.HistoryRecord
}

// NewInMemoryStore constructs an empty in-memory history store with the given
// retention limit (0 = unbounded).
func NewInMemoryStore(limit int) *InMemoryStore {
	return &InMemoryStore{limit: limit}
}

// Append adds a record, evicting the oldest entries past the limit.
func (s *InMemoryStore) Append(rec core.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if s.limit > 0 && len(s.records) > s.limit {
		s.records = s.records[len(s.records)-s.limit:]
	}
	return nil
}

// Records returns a defensive copy of all retained records, oldest first.
func (s *InMemoryStore) Records() []core.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.HistoryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Recent returns a defensive copy of at most n newest records, oldest first.
func (s *InMemoryStore) Recent(n int) []core.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || len(s.records) == 0 {
		return nil
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]core.HistoryRecord, n)
	copy(out, s.records[len(s.records)-n:])
	return out
}

// Len returns the number of retained records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
