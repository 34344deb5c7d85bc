package ui

import (
	"errors"
	"strings"
	"testing"

	"garim-lab/internal/dashboard"
	"garim-lab/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGaugeFillsProportionally(t *testing.T) {
	out := Gauge(dashboard.Gauge{Value: 50, Band: dashboard.BandNeutral})
	assert.Equal(t, 15, strings.Count(out, "█"))
	assert.Equal(t, 15, strings.Count(out, "░"))
	assert.Contains(t, out, " 50%")

	full := Gauge(dashboard.Gauge{Value: 100, Band: dashboard.BandConservative})
	assert.Equal(t, gaugeWidth, strings.Count(full, "█"))
}

func TestFeedList(t *testing.T) {
	out := FeedList(model.CategoryEconomy, []model.NewsItem{{Title: "Rates hold", Source: "Herald", Link: "https://x"}})
	assert.Contains(t, out, "Rates hold")
	assert.Contains(t, out, "Herald")
	assert.Contains(t, out, "https://x")

	assert.Contains(t, FeedList(model.CategoryEconomy, nil), "no news available")
}

func TestAnalysisAndRanking(t *testing.T) {
	av := dashboard.NewAnalysisView("Budget", model.Analysis{Extended: &model.ExtendedAnalysis{
		BiasLabel: "centrist", BiasScore: 50, OverallScore: 80, ReporterReliability: 70,
		AnalysisSummary: "fine", Impact: "taxes",
		FactChecks: []model.FactCheck{{Point: "count", Status: model.FactFalse, ReferenceLink: "https://ref"}},
	}})
	out := Analysis(av)
	for _, want := range []string{"Budget", "Overall score", "Reporter reliability", "centrist", "count", "false", "https://ref", "taxes"} {
		assert.Contains(t, out, want)
	}

	rows := Ranking([]dashboard.RankRow{{Rank: 1, Medal: "🥇", Author: "a", Score: 150}, {Rank: 4, Author: "d", Score: 10}})
	assert.Contains(t, rows, "🥇")
	assert.Contains(t, rows, "4.")
	assert.Contains(t, rows, "(150 pts)")

	assert.Contains(t, Error(errors.New("boom")), "boom")
}

func TestMarkdownPlain(t *testing.T) {
	out, err := Markdown("# Budget vote\n\n* **Impact:** taxes\n", "notty", 60)
	assert.NoError(t, err)
	assert.Contains(t, out, "Budget vote")
	assert.Contains(t, out, "taxes")
}
