// Package ui provides the terminal presentation layer: theme, progress
// reporting (animated on a TTY, log lines otherwise), and markdown
// rendering for doctor remediation output.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors holds the hex colors used by UI components.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme bundles colors and the global color toggle.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// NewTheme returns the default theme.
func NewTheme(noColor bool) *Theme {
	return &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   "#7D56F4",
			Secondary: "#43BF6D",
			Success:   "#43BF6D",
			Warning:   "#E5C07B",
			Error:     "#E06C75",
			Muted:     "#5C6370",
		},
	}
}

// StatusStyle returns a lipgloss style for the given semantic status
// ("ok", "warn", "fail"). With NoColor set, styles are plain.
func (t *Theme) StatusStyle(status string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if t.NoColor {
		return s
	}
	switch status {
	case "ok":
		return s.Foreground(lipgloss.Color(t.Colors.Success))
	case "warn":
		return s.Foreground(lipgloss.Color(t.Colors.Warning))
	case "fail":
		return s.Foreground(lipgloss.Color(t.Colors.Error)).Bold(true)
	default:
		return s.Foreground(lipgloss.Color(t.Colors.Muted))
	}
}

// Title returns the styled heading used above command output.
func (t *Theme) Title(text string) string {
	if t.NoColor {
		return text
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Colors.Primary)).
		Render(text)
}
