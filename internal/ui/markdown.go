package ui

import (
	"github.com/charmbracelet/glamour"
)

// Markdown renders an exported report for the terminal. style is a glamour
// standard style ("dark", "light", "notty"); empty picks one from the terminal.
func Markdown(md string, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
