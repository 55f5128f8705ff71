package assessment

import (
	"context"
	"sort"
	"sync"

	id "altscore/pkg/domain"
	"altscore/pkg/platform/sentinel"
)

// DefaultListLimit bounds ListByUser when the caller does not.
const DefaultListLimit = 50

// Store persists assessments. Swap with concrete storage without touching the
// scoring service.
type Store interface {
	Save(ctx context.Context, a Assessment) error
	GetByID(ctx context.Context, assessmentID id.AssessmentID) (Assessment, error)
	// ListByUser returns the caller's assessments newest first, at most limit.
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Assessment, error)
}

// MemoryStore is an in-memory store for tests and single-node runs.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[id.AssessmentID]Assessment
	byUser map[id.UserID][]id.AssessmentID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[id.AssessmentID]Assessment),
		byUser: make(map[id.UserID][]id.AssessmentID),
	}
}

func (s *MemoryStore) Save(_ context.Context, a Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[a.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[a.ID] = a
	s.byUser[a.UserID] = append(s.byUser[a.UserID], a.ID)
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, assessmentID id.AssessmentID) (Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[assessmentID]
	if !ok {
		return Assessment{}, sentinel.ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID id.UserID, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	out := make([]Assessment, 0, len(ids))
	for _, aid := range ids {
		out = append(out, s.byID[aid])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
