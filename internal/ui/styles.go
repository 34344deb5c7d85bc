package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor      = lipgloss.Color("#0969DA")
	accentColor       = lipgloss.Color("#2DA44E")
	errorColor        = lipgloss.Color("#CF222E")
	dimColor          = lipgloss.Color("#6E7681")
	linkColor         = lipgloss.Color("#58A6FF")
	scoreColor        = lipgloss.Color("#F778BA")
	sourceColor       = lipgloss.Color("#FFA657")
	progressiveColor  = lipgloss.Color("#007bff")
	neutralColor      = lipgloss.Color("#6c757d")
	conservativeColor = lipgloss.Color("#dc3545")
	trackColor        = lipgloss.Color("#3a3a3a")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	SectionStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginTop(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(sourceColor)

	LinkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(scoreColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)
