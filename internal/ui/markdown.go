package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for terminal display. When the theme
// disables color or rendering fails, the raw markdown is returned so
// the information is never lost.
func RenderMarkdown(theme *Theme, md string) string {
	if theme.NoColor {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
