// Package memory provides in-memory store implementations, used in tests and
// store-less deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"opslink/internal/domain"
	"opslink/internal/port"
)

type usageStore struct {
	mu      sync.Mutex
	records map[string]*domain.UsageRecord
}

// NewUsageStore creates an empty in-memory UsageStore.
func NewUsageStore() port.UsageStore {
	return &usageStore{records: make(map[string]*domain.UsageRecord)}
}

func (s *usageStore) Get(_ context.Context, userID string) (*domain.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *usageStore) Create(_ context.Context, rec *domain.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[rec.UserID] = &cp
	return nil
}

func (s *usageStore) Increment(_ context.Context, userID string) (*domain.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.CurrentCount++
	rec.LastUsedAt = time.Now()
	cp := *rec
	return &cp, nil
}

func (s *usageStore) Reset(_ context.Context, userID string, resetAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.CurrentCount = 0
	rec.ResetAt = resetAt
	return nil
}

func (s *usageStore) UpdatePlan(_ context.Context, userID string, plan domain.PlanName, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Plan = plan
	rec.MonthlyLimit = limit
	return nil
}
