package resultcache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"altscore/pkg/platform/sentinel"
)

// Memory is a bounded in-process cache. When the entry limit is reached the
// oldest entry is evicted first. Expired entries are removed on access.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	token     string
	value     []byte
	expiresAt time.Time
}

// NewMemory builds a cache holding at most maxEntries entries. A non-positive
// limit falls back to a sane default.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &Memory{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Put(_ context.Context, token string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	if elem, ok := m.entries[token]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = append([]byte(nil), value...)
		entry.expiresAt = expiresAt
		m.order.MoveToBack(elem)
		return nil
	}

	if m.order.Len() >= m.maxEntries {
		oldest := m.order.Front()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).token)
		}
	}

	m.entries[token] = m.order.PushBack(&memoryEntry{
		token:     token,
		value:     append([]byte(nil), value...),
		expiresAt: expiresAt,
	})
	return nil
}

func (m *Memory) Get(_ context.Context, token string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.order.Remove(elem)
		delete(m.entries, token)
		return nil, sentinel.ErrExpired
	}
	return append([]byte(nil), entry.value...), nil
}

// Len reports the number of live entries. Test helper.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
