package config

import (
	"fmt"
	"strings"
	"time"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
	Listen   string `mapstructure:"listen"`   // e.g., ":8080"
	Language string `mapstructure:"language"` // display language for AI replies
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"` // use redis as feed cache backend
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FeedConfig controls the news search feed.
type FeedConfig struct {
	BaseURL      string            `mapstructure:"base_url"`
	Language     string            `mapstructure:"hl"`
	Country      string            `mapstructure:"gl"`
	Edition      string            `mapstructure:"ceid"`
	UserAgent    string            `mapstructure:"user_agent"`
	Timeout      string            `mapstructure:"timeout"`       // duration string, e.g., "10s"
	CacheTTL     string            `mapstructure:"cache_ttl"`     // duration string, e.g., "5m"
	NegativeTTL  string            `mapstructure:"negative_ttl"`  // empty feeds; "0s" disables
	WarmInterval string            `mapstructure:"warm_interval"` // empty disables cache warming
	Limit        int               `mapstructure:"limit"`
	Queries      map[string]string `mapstructure:"queries"` // category id -> search label
}

// AIConfig controls the analysis provider.
type AIConfig struct {
	Provider string `mapstructure:"provider"` // gemini or openai
	BaseURL  string `mapstructure:"base_url"` // optional, openai-compatible endpoints
	Prefer   string `mapstructure:"prefer"`   // substring of the preferred model name
	Report   string `mapstructure:"report"`   // extended or simple
	Timeout  string `mapstructure:"timeout"`  // duration string, e.g., "60s"
}

// SessionConfig controls visitor session lifetime.
type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	IdleTTL    string `mapstructure:"idle_ttl"` // duration string, e.g., "2h"
}

// SeedEntry is an initial leaderboard row.
type SeedEntry struct {
	Name  string `mapstructure:"name"`
	Score int    `mapstructure:"score"`
}

// RankingConfig controls the leaderboard.
type RankingConfig struct {
	Size int         `mapstructure:"size"` // rows shown on the dashboard
	Seed []SeedEntry `mapstructure:"seed"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Feed    FeedConfig    `mapstructure:"feed"`
	AI      AIConfig      `mapstructure:"ai"`
	Session SessionConfig `mapstructure:"session"`
	Ranking RankingConfig `mapstructure:"ranking"`
	Boards  []string      `mapstructure:"boards"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.Listen == "" {
		c.App.Listen = ":8080"
	}
	if c.App.Language == "" {
		c.App.Language = "Korean"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = "https://news.google.com"
	}
	if c.Feed.Language == "" {
		c.Feed.Language = "ko"
	}
	if c.Feed.Country == "" {
		c.Feed.Country = "KR"
	}
	if c.Feed.Edition == "" {
		c.Feed.Edition = "KR:ko"
	}
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = "Mozilla/5.0"
	}
	if c.Feed.Timeout == "" {
		c.Feed.Timeout = "10s"
	}
	if c.Feed.CacheTTL == "" {
		c.Feed.CacheTTL = "5m"
	}
	if c.Feed.NegativeTTL == "" {
		c.Feed.NegativeTTL = "30s"
	}
	if c.Feed.Limit == 0 {
		c.Feed.Limit = 6
	}
	if c.Feed.Queries == nil {
		c.Feed.Queries = map[string]string{}
	}
	for cat, q := range map[string]string{"politics": "정치", "economy": "경제", "society": "사회"} {
		if strings.TrimSpace(c.Feed.Queries[cat]) == "" {
			c.Feed.Queries[cat] = q
		}
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.AI.Prefer == "" {
		c.AI.Prefer = "flash"
	}
	if c.AI.Report == "" {
		c.AI.Report = "extended"
	}
	if c.AI.Timeout == "" {
		c.AI.Timeout = "60s"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "garim_session"
	}
	if c.Session.IdleTTL == "" {
		c.Session.IdleTTL = "2h"
	}
	if c.Ranking.Size == 0 {
		c.Ranking.Size = 3
	}
	if c.Ranking.Seed == nil {
		c.Ranking.Seed = []SeedEntry{
			{Name: "가림마스터", Score: 150},
			{Name: "경제탐정", Score: 120},
		}
	}
	if len(c.Boards) == 0 {
		c.Boards = []string{
			"Politics Forum",
			"Domestic Stocks",
			"US Stocks",
			"Real Estate/Investing",
			"Legal/Tax Consulting",
		}
	}
}

// Validate checks values that FillDefaults cannot repair.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"feed.timeout":      c.Feed.Timeout,
		"feed.cache_ttl":    c.Feed.CacheTTL,
		"feed.negative_ttl": c.Feed.NegativeTTL,
		"ai.timeout":        c.AI.Timeout,
		"session.idle_ttl":  c.Session.IdleTTL,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}
	if c.Feed.WarmInterval != "" {
		if _, err := time.ParseDuration(c.Feed.WarmInterval); err != nil {
			return fmt.Errorf("invalid feed.warm_interval %q: %w", c.Feed.WarmInterval, err)
		}
	}
	switch strings.ToLower(c.AI.Provider) {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown ai.provider %q", c.AI.Provider)
	}
	switch strings.ToLower(c.AI.Report) {
	case "extended", "simple":
	default:
		return fmt.Errorf("unknown ai.report %q", c.AI.Report)
	}
	for _, s := range c.Ranking.Seed {
		if strings.TrimSpace(s.Name) == "" || s.Score < 0 {
			return fmt.Errorf("invalid ranking seed %+v", s)
		}
	}
	return nil
}

// Duration parses a duration string that Validate already accepted.
// An empty string yields zero.
func Duration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, _ := time.ParseDuration(s)
	return d
}
