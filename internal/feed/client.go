package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"garim-lab/internal/model"

	"github.com/mmcdole/gofeed/rss"
)

// Client is a minimal client for a news search RSS endpoint
// (https://news.google.com/rss/search by default).
type Client struct {
	baseURL   string
	hl        string
	gl        string
	ceid      string
	userAgent string
	limit     int
	client    *http.Client
}

// ClientConfig configures a Client. Zero values fall back to the Korean edition of Google News.
type ClientConfig struct {
	BaseURL    string
	Language   string // hl
	Country    string // gl
	Edition    string // ceid
	UserAgent  string
	Timeout    time.Duration
	Limit      int
	HTTPClient *http.Client // optional, Timeout is ignored when set
}

// NewClient creates a feed search client.
func NewClient(cfg ClientConfig) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://news.google.com"
	}
	if cfg.Language == "" {
		cfg.Language = "ko"
	}
	if cfg.Country == "" {
		cfg.Country = "KR"
	}
	if cfg.Edition == "" {
		cfg.Edition = cfg.Country + ":" + cfg.Language
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 6
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		hl:        cfg.Language,
		gl:        cfg.Country,
		ceid:      cfg.Edition,
		userAgent: cfg.UserAgent,
		limit:     cfg.Limit,
		client:    hc,
	}
}

// SearchURL builds the feed URL for a search query.
func (c *Client) SearchURL(query string) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("hl", c.hl)
	q.Set("gl", c.gl)
	q.Set("ceid", c.ceid)
	return c.baseURL + "/rss/search?" + q.Encode()
}

// Search fetches the feed for query and returns up to the configured limit of items in feed order.
func (c *Client) Search(ctx context.Context, query string) ([]model.NewsItem, error) {
	endpoint := c.SearchURL(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed: search %q status %d", query, resp.StatusCode)
	}
	fp := &rss.Parser{}
	doc, err := fp.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: parse %q: %w", query, err)
	}
	items := make([]model.NewsItem, 0, c.limit)
	for _, it := range doc.Items {
		if len(items) >= c.limit {
			break
		}
		if it == nil || strings.TrimSpace(it.Title) == "" {
			continue
		}
		items = append(items, convertItem(it, doc.Title))
	}
	slog.Debug("feed: fetched", "query", query, "entries", len(doc.Items), "kept", len(items))
	return items, nil
}

// convertItem maps an RSS item to our NewsItem model.
func convertItem(it *rss.Item, channel string) model.NewsItem {
	title := strings.TrimSpace(it.Title)
	source := ""
	if it.Source != nil {
		source = strings.TrimSpace(it.Source.Title)
	}
	if source == "" {
		// Google News appends " - Publisher" to every headline.
		if i := strings.LastIndex(title, " - "); i > 0 {
			source = strings.TrimSpace(title[i+3:])
		}
	}
	if source == "" {
		source = strings.TrimSpace(channel)
	}
	return model.NewsItem{
		Title:  title,
		Source: source,
		Link:   strings.TrimSpace(it.Link),
	}
}
