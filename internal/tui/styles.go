package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the views use. Two palettes exist, picked by the
// darkMode setting.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Clock       lipgloss.Style
	Muted       lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Doc         lipgloss.Style
}

type palette struct {
	accent, tabBg, muted, text, border lipgloss.Color
}

var (
	darkPalette = palette{
		accent: lipgloss.Color("205"),
		tabBg:  lipgloss.Color("236"),
		muted:  lipgloss.Color("240"),
		text:   lipgloss.Color("252"),
		border: lipgloss.Color("62"),
	}
	lightPalette = palette{
		accent: lipgloss.Color("127"),
		tabBg:  lipgloss.Color("254"),
		muted:  lipgloss.Color("245"),
		text:   lipgloss.Color("235"),
		border: lipgloss.Color("33"),
	}
)

func NewStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.accent).
			Background(p.tabBg).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(22),
		Value: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true),
		Clock: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Align(lipgloss.Center),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
