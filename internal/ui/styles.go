package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected rows, borders
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "238" // Dark gray - for disabled controls
	ColorButton    = "62"  // Indigo - button background
)

// Styles contains shared style definitions used across views and overlays.
var Styles = struct {
	Title lipgloss.Style // Bold accent color - for main titles

	Box lipgloss.Style // Overlay box with rounded border

	Muted  lipgloss.Style // Dimmed text
	Hint   lipgloss.Style // Help/hint text
	Status lipgloss.Style // Page and count indicators
	Empty  lipgloss.Style // Empty state text (muted, italic)

	Button         lipgloss.Style // Enabled control
	ButtonDisabled lipgloss.Style // Control at a bound (Previous on page 1, Next on the last page)

	FieldKey   lipgloss.Style // Detail overlay field label
	FieldValue lipgloss.Style // Detail overlay field value
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color(ColorButton)).
		Padding(0, 1),
	ButtonDisabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Padding(0, 1),
	FieldKey: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	FieldValue: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
}

// buttonStyle picks the enabled or disabled control style.
func buttonStyle(enabled bool) lipgloss.Style {
	if enabled {
		return Styles.Button
	}
	return Styles.ButtonDisabled
}

// NewTableStyles returns the catalog table styles.
func NewTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	return s
}
