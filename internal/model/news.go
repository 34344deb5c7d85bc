package model

import (
	"strings"
	"time"
)

// NewsItem represents a single entry from a news search feed.
type NewsItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link,omitempty"`
}

// Category is one of the coarse topical buckets used by both the feed and the board.
type Category string

const (
	CategoryPolitics Category = "politics"
	CategoryEconomy  Category = "economy"
	CategorySociety  Category = "society"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryPolitics, CategoryEconomy, CategorySociety}
}

// ParseCategory accepts a category id, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// BoardPost is a single community board message.
type BoardPost struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Board     string    `json:"board"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// RankEntry is one row of the leaderboard.
type RankEntry struct {
	Author string `json:"author"`
	Score  int    `json:"score"`
}

// SavedArticle is a headline the visitor scrapped.
type SavedArticle struct {
	Title   string    `json:"title"`
	SavedAt time.Time `json:"saved_at"`
}
