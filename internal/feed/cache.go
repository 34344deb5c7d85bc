package feed

import (
	"context"
	"sync"
	"time"

	"garim-lab/internal/model"
)

// Cache stores feed results for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) ([]model.NewsItem, bool, error)
	Set(ctx context.Context, key string, items []model.NewsItem, ttl time.Duration) error
}

type memEntry struct {
	items   []model.NewsItem
	expires time.Time
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty cache. now may be nil to use time.Now.
func NewMemoryCache(now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{entries: map[string]memEntry{}, now: now}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]model.NewsItem, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return cloneItems(e.items), true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, items []model.NewsItem, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{items: cloneItems(items), expires: m.now().Add(ttl)}
	return nil
}

func cloneItems(items []model.NewsItem) []model.NewsItem {
	out := make([]model.NewsItem, len(items))
	copy(out, items)
	return out
}
