package cmd

import (
	"strings"

	"garim-lab/internal/ai"
	"garim-lab/internal/config"
	"garim-lab/internal/feed"
	"garim-lab/internal/model"
	"garim-lab/internal/redisclient"
	"garim-lab/internal/storage"
)

// newFeedSource builds the cached category feed. The returned func releases
// the Redis connection when one was opened.
func newFeedSource(cfg config.Config) (*feed.Source, func()) {
	client := feed.NewClient(feed.ClientConfig{
		BaseURL:   cfg.Feed.BaseURL,
		Language:  cfg.Feed.Language,
		Country:   cfg.Feed.Country,
		Edition:   cfg.Feed.Edition,
		UserAgent: cfg.Feed.UserAgent,
		Timeout:   config.Duration(cfg.Feed.Timeout),
		Limit:     cfg.Feed.Limit,
	})

	var cache feed.Cache = feed.NewMemoryCache(nil)
	closeFn := func() {}
	if cfg.Redis.Enabled {
		rdb := redisclient.New(cfg.Redis)
		cache = storage.NewRedisStore(rdb)
		closeFn = func() { _ = rdb.Close() }
	}

	queries := map[model.Category]string{}
	for k, q := range cfg.Feed.Queries {
		if cat, ok := model.ParseCategory(k); ok {
			queries[cat] = q
		}
	}
	src := feed.NewSource(client, cache, config.Duration(cfg.Feed.CacheTTL), queries).
		WithNegativeTTL(config.Duration(cfg.Feed.NegativeTTL))
	return src, closeFn
}

// newAnalyzer builds the analysis client for the configured provider.
func newAnalyzer(cfg config.Config) *ai.Analyzer {
	dial := ai.GeminiDialer(nil)
	if strings.EqualFold(cfg.AI.Provider, "openai") {
		dial = ai.OpenAIDialer(cfg.AI.BaseURL)
	}
	return ai.New(ai.Options{
		Dial:     dial,
		Prefer:   cfg.AI.Prefer,
		Language: cfg.App.Language,
		Shape:    ai.ParseShape(cfg.AI.Report),
		Timeout:  config.Duration(cfg.AI.Timeout),
	})
}

func seedRanking(cfg config.Config) []model.RankEntry {
	out := make([]model.RankEntry, 0, len(cfg.Ranking.Seed))
	for _, s := range cfg.Ranking.Seed {
		out = append(out, model.RankEntry{Author: s.Name, Score: s.Score})
	}
	return out
}
