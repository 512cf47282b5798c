// Package view renders application state to terminal strings with lipgloss.
// Every function here is pure: same state in, same string out.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zaqqye/weld_backend_v1/internal/registry"
	"github.com/zaqqye/weld_backend_v1/internal/theme"
)

// Styles holds the lipgloss styles derived from one applied theme.
type Styles struct {
	Theme theme.Theme

	Topbar     lipgloss.Style
	Sidebar    lipgloss.Style
	MenuItem   lipgloss.Style
	MenuActive lipgloss.Style
	Content    lipgloss.Style
	Config     lipgloss.Style

	Title   lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Cursor  lipgloss.Style
	Draft   lipgloss.Style
	Changed lipgloss.Style
	Card    lipgloss.Style
	Button  lipgloss.Style
	Pressed lipgloss.Style

	Toasts map[registry.Severity]lipgloss.Style
}

func NewStyles(t theme.Theme) Styles {
	bg, fg, border, muted := t.Surface.Shade(50), t.Surface.Shade(900), t.Surface.Shade(200), t.Surface.Shade(500)
	if t.Dark {
		bg, fg, border, muted = t.Surface.Shade(950), t.Surface.Shade(50), t.Surface.Shade(700), t.Surface.Shade(400)
	}
	primary := lipgloss.Color(t.PrimaryColor)
	contrast := lipgloss.Color(t.PrimaryContrastColor)
	highlightBg := lipgloss.Color(t.HighlightBackground)
	highlightFg := lipgloss.Color(t.HighlightColor)

	return Styles{
		Theme: t,

		Topbar: lipgloss.NewStyle().
			Background(primary).
			Foreground(contrast).
			Bold(true).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),
		MenuItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		MenuActive: lipgloss.NewStyle().
			Background(highlightBg).
			Foreground(highlightFg).
			Bold(true),
		Content: lipgloss.NewStyle().
			Padding(0, 1),
		Config: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg)),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		Cursor: lipgloss.NewStyle().
			Background(highlightBg).
			Foreground(highlightFg),
		Draft: lipgloss.NewStyle().
			Foreground(primary).
			Italic(true),
		Changed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary.Shade(600))).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 1),
		Pressed: lipgloss.NewStyle().
			Background(primary).
			Foreground(contrast).
			Padding(0, 1),

		Toasts: map[registry.Severity]lipgloss.Style{
			registry.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true),
			registry.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Bold(true),
			registry.SeverityWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")).Bold(true),
			registry.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		},
	}
}
