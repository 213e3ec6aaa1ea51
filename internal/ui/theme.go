package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloglist/internal/state"
)

// Theme defines the palette used by every view.
type Theme struct {
	Name string

	Background  string
	Surface     string
	SelectionBg string
	Border      string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Panel      lipgloss.Style
	Label      lipgloss.Style
	Prompt     lipgloss.Style

	SuccessBanner lipgloss.Style
	FailureBanner lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	banner := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, false, true)

	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Width(8),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		SuccessBanner: banner.
			Foreground(lipgloss.Color(t.Success)).
			BorderForeground(lipgloss.Color(t.Success)),
		FailureBanner: banner.
			Foreground(lipgloss.Color(t.Danger)).
			BorderForeground(lipgloss.Color(t.Danger)),
	}
}

// Banner returns the style for a notification of the given kind: green for
// success, red for failure.
func (s Styles) Banner(kind state.Kind) lipgloss.Style {
	if kind == state.KindSuccess {
		return s.SuccessBanner
	}
	return s.FailureBanner
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24", // bg0
		Surface:     "#192330", // bg1
		SelectionBg: "#2b3b51", // sel0
		Border:      "#39506d", // bg4
		Text:        "#cdcecf", // fg1
		Muted:       "#738091", // comment
		Accent:      "#719cd6", // blue
		Success:     "#81b29a", // green
		Warning:     "#dbc074", // yellow
		Danger:      "#c94f6d", // red
	}
}

func slateTheme() Theme {
	return Theme{
		Name:        "Slate",
		Background:  "#0f172a",
		Surface:     "#1e293b",
		SelectionBg: "#334155",
		Border:      "#475569",
		Text:        "#e2e8f0",
		Muted:       "#94a3b8",
		Accent:      "#38bdf8",
		Success:     "#4ade80",
		Warning:     "#facc15",
		Danger:      "#f87171",
	}
}
