package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"garim-lab/internal/model"
	"garim-lab/internal/session"
)

var (
	// ErrMissingCredential means the visitor has not entered an analysis key yet.
	ErrMissingCredential = errors.New("enter an API key in the sidebar first")
	// ErrNothingToScrap means there is no current analysis to save.
	ErrNothingToScrap = errors.New("no analysed article to scrap")
	// ErrUnknownBoard rejects posts to boards outside the configured list.
	ErrUnknownBoard = errors.New("unknown board")
	// ErrNoSuchItem means the requested feed entry is not in the current list.
	ErrNoSuchItem = errors.New("news item not found")
	// ErrStaleItem means the clicked headline left the feed after the page was rendered.
	ErrStaleItem = errors.New("the news list changed, reload and pick the article again")
)

// FeedSource is the cached category feed.
type FeedSource interface {
	FetchByCategory(ctx context.Context, cat model.Category) []model.NewsItem
}

// Analyzer produces an analysis report for one headline.
type Analyzer interface {
	Analyze(ctx context.Context, title, source, credential string) (model.Analysis, error)
}

// Presenter turns visitor actions into feed, analysis and session calls.
type Presenter struct {
	feed        FeedSource
	analyzer    Analyzer
	boards      []string
	rankingSize int
}

// New creates a Presenter. boards is the enumerated board list in display order.
func New(feed FeedSource, analyzer Analyzer, boards []string, rankingSize int) *Presenter {
	if rankingSize <= 0 {
		rankingSize = 3
	}
	return &Presenter{
		feed:        feed,
		analyzer:    analyzer,
		boards:      slices.Clone(boards),
		rankingSize: rankingSize,
	}
}

// Boards returns the configured board names.
func (p *Presenter) Boards() []string { return slices.Clone(p.boards) }

// categoryResolver is implemented by feeds that know display labels for categories.
type categoryResolver interface {
	ResolveCategory(v string) (model.Category, bool)
}

// ResolveCategory maps a category id, or a display label the feed knows, to a Category.
func (p *Presenter) ResolveCategory(v string) (model.Category, bool) {
	if r, ok := p.feed.(categoryResolver); ok {
		return r.ResolveCategory(v)
	}
	return model.ParseCategory(v)
}

// SelectCategory returns the feed list for a category.
func (p *Presenter) SelectCategory(ctx context.Context, cat model.Category) []model.NewsItem {
	return p.feed.FetchByCategory(ctx, cat)
}

// ClickAnalyze analyses item with the session credential and records the result.
// On failure the current analysis is left untouched.
func (p *Presenter) ClickAnalyze(ctx context.Context, s *session.Store, item model.NewsItem) error {
	key := s.Credential()
	if key == "" {
		return ErrMissingCredential
	}
	res, err := p.analyzer.Analyze(ctx, item.Title, item.Source, key)
	if err != nil {
		slog.Warn("dashboard: analysis failed", "session", s.ID(), "err", err)
		return err
	}
	s.RecordAnalysis(item.Title, res)
	return nil
}

// AnalyzeAt analyses the idx-th entry of the category feed.
func (p *Presenter) AnalyzeAt(ctx context.Context, s *session.Store, cat model.Category, idx int) error {
	return p.AnalyzeItem(ctx, s, cat, idx, "", "")
}

// AnalyzeItem analyses the entry the visitor clicked. title and source, when
// given, are what the page showed at idx; if the feed changed since, the entry
// is looked up by them and ErrStaleItem is returned when it is gone.
func (p *Presenter) AnalyzeItem(ctx context.Context, s *session.Store, cat model.Category, idx int, title, source string) error {
	items := p.SelectCategory(ctx, cat)
	if title == "" {
		if idx < 0 || idx >= len(items) {
			return fmt.Errorf("%w: %s #%d", ErrNoSuchItem, cat, idx)
		}
		return p.ClickAnalyze(ctx, s, items[idx])
	}
	matches := func(it model.NewsItem) bool {
		return it.Title == title && (source == "" || it.Source == source)
	}
	if idx >= 0 && idx < len(items) && matches(items[idx]) {
		return p.ClickAnalyze(ctx, s, items[idx])
	}
	for _, it := range items {
		if matches(it) {
			return p.ClickAnalyze(ctx, s, it)
		}
	}
	return fmt.Errorf("%w: %q", ErrStaleItem, title)
}

// ClickScrap saves the title of the current analysis.
func (p *Presenter) ClickScrap(s *session.Store) error {
	cur, ok := s.CurrentAnalysis()
	if !ok {
		return ErrNothingToScrap
	}
	s.SaveArticle(cur.Title)
	return nil
}

// SubmitPost adds a board post; empty author or body yields session.ErrValidation.
func (p *Presenter) SubmitPost(s *session.Store, author, body, board string) error {
	if !slices.Contains(p.boards, board) {
		return fmt.Errorf("%w: %q", ErrUnknownBoard, board)
	}
	return s.SubmitPost(author, body, board)
}
