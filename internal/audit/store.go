package audit

import (
	"context"
	"sort"
	"sync"

	id "altscore/pkg/domain"
)

// Store persists audit events. Append-only; events are never updated.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]Event, error)
}

// MemoryStore is an in-memory audit store for tests and single-node runs.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) ListByBusiness(_ context.Context, businessID id.BusinessID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.BusinessID == businessID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// All returns every stored event in append order. Test helper.
func (s *MemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events...)
}
