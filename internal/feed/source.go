package feed

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"garim-lab/internal/model"

	"golang.org/x/sync/singleflight"
)

// DefaultNegativeTTL is how long an empty or failed fetch is remembered.
const DefaultNegativeTTL = 30 * time.Second

// sharedFetchTimeout bounds a fetch that outlives the request which started it.
const sharedFetchTimeout = 30 * time.Second

// Searcher retrieves feed items for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.NewsItem, error)
}

// Source resolves categories to cached feed items.
type Source struct {
	searcher Searcher
	cache    Cache
	ttl      time.Duration
	negTTL   time.Duration
	queries  map[model.Category]string
	group    singleflight.Group
}

// NewSource wires a searcher and a cache. queries maps a category to its search label;
// a category without a label is searched by its id.
func NewSource(searcher Searcher, cache Cache, ttl time.Duration, queries map[model.Category]string) *Source {
	if cache == nil {
		cache = NewMemoryCache(nil)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	q := make(map[model.Category]string, len(queries))
	for k, v := range queries {
		q[k] = v
	}
	return &Source{searcher: searcher, cache: cache, ttl: ttl, negTTL: DefaultNegativeTTL, queries: q}
}

// WithNegativeTTL sets how long empty results are cached. Zero disables it.
func (s *Source) WithNegativeTTL(d time.Duration) *Source {
	s.negTTL = max(d, 0)
	return s
}

// CacheKey is the cache key of a category feed.
func CacheKey(cat model.Category) string {
	return "feed:category:" + string(cat)
}

// Query returns the search label used for a category.
func (s *Source) Query(cat model.Category) string {
	if q := strings.TrimSpace(s.queries[cat]); q != "" {
		return q
	}
	return string(cat)
}

// ResolveCategory accepts a category id or its configured search label.
func (s *Source) ResolveCategory(v string) (model.Category, bool) {
	if c, ok := model.ParseCategory(v); ok {
		return c, true
	}
	v = strings.TrimSpace(v)
	for _, c := range model.Categories() {
		if q := strings.TrimSpace(s.queries[c]); q != "" && strings.EqualFold(q, v) {
			return c, true
		}
	}
	return "", false
}

// FetchByCategory returns the feed for a category, served from cache within the TTL.
// It never fails: any fetch error yields an empty slice, remembered for the negative TTL.
func (s *Source) FetchByCategory(ctx context.Context, cat model.Category) []model.NewsItem {
	key := CacheKey(cat)
	if items, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("feed: cache get error", "category", cat, "error", err)
	} else if ok {
		if items == nil {
			items = []model.NewsItem{}
		}
		return items
	}
	v, _, _ := s.group.Do(key, func() (any, error) {
		// merged callers must not lose the result when the first one goes away
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		items, err := s.fetch(fctx, cat)
		if err != nil {
			slog.Warn("feed: unavailable", "category", cat, "error", err)
			items = []model.NewsItem{}
		}
		ttl := s.ttl
		if len(items) == 0 {
			ttl = s.negTTL
		}
		if err := s.cache.Set(fctx, key, items, ttl); err != nil {
			slog.Warn("feed: cache set error", "category", cat, "error", err)
		}
		return items, nil
	})
	return cloneItems(v.([]model.NewsItem))
}

// Refresh fetches a category bypassing the cache and stores a non-empty result.
// A failed or empty fetch leaves the cached entry untouched.
func (s *Source) Refresh(ctx context.Context, cat model.Category) error {
	items, err := s.fetch(ctx, cat)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return s.cache.Set(ctx, CacheKey(cat), items, s.ttl)
}

func (s *Source) fetch(ctx context.Context, cat model.Category) ([]model.NewsItem, error) {
	return s.searcher.Search(ctx, s.Query(cat))
}
