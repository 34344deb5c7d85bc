package dashboard

import (
	"context"
	"slices"

	"garim-lab/internal/model"
	"garim-lab/internal/session"
)

// Band is the color band of a 0-100 bias gauge.
type Band string

const (
	BandProgressive  Band = "progressive"
	BandNeutral      Band = "neutral"
	BandConservative Band = "conservative"
)

// BandFor returns the band of a bias score: below 45, 45 to 55, above 55.
func BandFor(score int) Band {
	switch {
	case score < 45:
		return BandProgressive
	case score > 55:
		return BandConservative
	}
	return BandNeutral
}

// Color returns the gauge fill color.
func (b Band) Color() string {
	switch b {
	case BandProgressive:
		return "#007bff"
	case BandConservative:
		return "#dc3545"
	}
	return "#6c757d"
}

// Gauge is a 0-100 percentage bar.
type Gauge struct {
	Value int
	Band  Band
}

func newGauge(v int) Gauge {
	return Gauge{Value: min(max(v, 0), 100), Band: BandFor(v)}
}

// AnalysisView is the report pane.
type AnalysisView struct {
	Title       string
	Label       string
	Summary     string
	Impact      string
	Bias        Gauge
	Overall     *Gauge // extended reports only
	Reliability *Gauge // extended reports only
	FactChecks  []model.FactCheck
	Raw         model.Analysis
}

// RankRow is one leaderboard line.
type RankRow struct {
	Rank   int
	Medal  string
	Author string
	Score  int
}

var medals = []string{"🥇", "🥈", "🥉"}

// Medal returns the decoration for a 1-based rank, empty past third place.
func Medal(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return ""
}

// View is everything the three-pane page shows.
type View struct {
	Categories    []model.Category
	Category      model.Category
	Items         []model.NewsItem
	HasCredential bool
	Analysis      *AnalysisView
	Boards        []string
	Board         string
	Posts         []model.BoardPost
	Ranking       []RankRow
	Saved         []model.SavedArticle
	Flash         string
}

// View assembles the page state for a session. Unknown boards fall back to the first one.
func (p *Presenter) View(ctx context.Context, s *session.Store, cat model.Category, board string) View {
	if _, ok := model.ParseCategory(string(cat)); !ok {
		cat = model.CategoryPolitics
	}
	if !slices.Contains(p.boards, board) && len(p.boards) > 0 {
		board = p.boards[0]
	}
	v := View{
		Categories:    model.Categories(),
		Category:      cat,
		Items:         p.SelectCategory(ctx, cat),
		HasCredential: s.Credential() != "",
		Boards:        p.Boards(),
		Board:         board,
		Posts:         s.ListPosts(board),
		Saved:         s.SavedArticles(),
	}
	if cur, ok := s.CurrentAnalysis(); ok {
		v.Analysis = NewAnalysisView(cur.Title, cur.Analysis)
	}
	for i, e := range s.TopRanking(p.rankingSize) {
		v.Ranking = append(v.Ranking, RankRow{Rank: i + 1, Medal: Medal(i + 1), Author: e.Author, Score: e.Score})
	}
	return v
}

// NewAnalysisView flattens either report shape for display.
func NewAnalysisView(title string, a model.Analysis) *AnalysisView {
	label, score := a.Headline()
	av := &AnalysisView{
		Title:   title,
		Label:   label,
		Summary: a.Summary(),
		Impact:  a.Impact(),
		Bias:    newGauge(score),
		Raw:     a,
	}
	if ext := a.Extended; ext != nil {
		overall, rel := newGauge(ext.OverallScore), newGauge(ext.ReporterReliability)
		av.Overall = &overall
		av.Reliability = &rel
		av.FactChecks = ext.FactChecks
	}
	return av
}
