package memory

import (
	"context"
	"sync"

	"opslink/internal/domain"
	"opslink/internal/port"
)

type errorLogStore struct {
	mu      sync.Mutex
	entries []domain.ErrorLogEntry
	max     int
}

// NewErrorLogStore creates an in-memory ErrorLogStore bounded to max entries
// (oldest dropped first).
func NewErrorLogStore(max int) port.ErrorLogStore {
	if max <= 0 {
		max = 1000
	}
	return &errorLogStore{max: max}
}

func (s *errorLogStore) Append(_ context.Context, entry *domain.ErrorLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	if len(s.entries) > s.max {
		s.entries = s.entries[len(s.entries)-s.max:]
	}
	return nil
}

func (s *errorLogStore) Recent(_ context.Context, limit int) ([]domain.ErrorLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]domain.ErrorLogEntry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
