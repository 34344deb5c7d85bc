package ui

import (
	"fmt"
	"strings"

	"garim-lab/internal/dashboard"
	"garim-lab/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const gaugeWidth = 30

// Gauge draws a 0-100 bar colored by its band.
func Gauge(g dashboard.Gauge) string {
	filled := g.Value * gaugeWidth / 100
	color := neutralColor
	switch g.Band {
	case dashboard.BandProgressive:
		color = progressiveColor
	case dashboard.BandConservative:
		color = conservativeColor
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(trackColor).Render(strings.Repeat("░", gaugeWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, g.Value)
}

// FeedList renders numbered feed items.
func FeedList(cat model.Category, items []model.NewsItem) string {
	b := &strings.Builder{}
	b.WriteString(HeaderStyle.Render("News: "+string(cat)) + "\n")
	if len(items) == 0 {
		b.WriteString(DimStyle.Render("no news available right now") + "\n")
		return b.String()
	}
	for i, it := range items {
		fmt.Fprintf(b, "%2d. %s\n    %s", i+1, TitleStyle.Render(it.Title), SourceStyle.Render(it.Source))
		if it.Link != "" {
			b.WriteString("  " + LinkStyle.Render(it.Link))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Analysis renders the report pane.
func Analysis(av *dashboard.AnalysisView) string {
	b := &strings.Builder{}
	b.WriteString(HeaderStyle.Render(av.Title) + "\n")
	if av.Overall != nil {
		fmt.Fprintf(b, "%-22s %s\n", "Overall score", Gauge(*av.Overall))
	}
	if av.Reliability != nil {
		fmt.Fprintf(b, "%-22s %s\n", "Reporter reliability", Gauge(*av.Reliability))
	}
	fmt.Fprintf(b, "%-22s %s\n", "Bias: "+av.Label, Gauge(av.Bias))
	b.WriteString(DimStyle.Render("← progressive          neutral          conservative →") + "\n")
	if av.Summary != "" {
		b.WriteString(SectionStyle.Render("Critique") + "\n" + av.Summary + "\n")
	}
	if len(av.FactChecks) > 0 {
		b.WriteString(SectionStyle.Render("Fact checks") + "\n")
		for _, fc := range av.FactChecks {
			fmt.Fprintf(b, "• %s  %s\n", TitleStyle.Render(fc.Point), ScoreStyle.Render(string(fc.Status)))
			if fc.ReferenceLink != "" {
				b.WriteString("  " + LinkStyle.Render(fc.ReferenceLink) + "\n")
			}
		}
	}
	if av.Impact != "" {
		b.WriteString(BoxStyle.Render("Impact: "+av.Impact) + "\n")
	}
	return b.String()
}

// Ranking renders leaderboard rows.
func Ranking(rows []dashboard.RankRow) string {
	b := &strings.Builder{}
	for _, r := range rows {
		medal := r.Medal
		if medal == "" {
			medal = fmt.Sprintf("%d.", r.Rank)
		}
		fmt.Fprintf(b, "%s %s %s\n", medal, TitleStyle.Render(r.Author), ScoreStyle.Render(fmt.Sprintf("(%d pts)", r.Score)))
	}
	return b.String()
}

// Error renders an error line.
func Error(err error) string {
	return ErrorStyle.Render("error: " + err.Error())
}
