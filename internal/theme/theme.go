package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette.
type Theme struct {
	ID   string
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color

	Border       lipgloss.Color
	BorderActive lipgloss.Color
	Highlight    lipgloss.Color
}

var (
	CatppuccinMocha = Theme{
		ID:           "catppuccin-mocha",
		Name:         "Catppuccin Mocha",
		Primary:      lipgloss.Color("#cdd6f4"),
		Secondary:    lipgloss.Color("#a6adc8"),
		Accent:       lipgloss.Color("#f5c2e7"),
		Muted:        lipgloss.Color("#6c7086"),
		Error:        lipgloss.Color("#f38ba8"),
		Success:      lipgloss.Color("#a6e3a1"),
		Border:       lipgloss.Color("#45475a"),
		BorderActive: lipgloss.Color("#89b4fa"),
		Highlight:    lipgloss.Color("#45475a"),
	}

	Dracula = Theme{
		ID:           "dracula",
		Name:         "Dracula",
		Primary:      lipgloss.Color("#f8f8f2"),
		Secondary:    lipgloss.Color("#6272a4"),
		Accent:       lipgloss.Color("#ff79c6"),
		Muted:        lipgloss.Color("#6272a4"),
		Error:        lipgloss.Color("#ff5555"),
		Success:      lipgloss.Color("#50fa7b"),
		Border:       lipgloss.Color("#44475a"),
		BorderActive: lipgloss.Color("#bd93f9"),
		Highlight:    lipgloss.Color("#44475a"),
	}

	RosePineMoon = Theme{
		ID:           "rosepine-moon",
		Name:         "Rosé Pine Moon",
		Primary:      lipgloss.Color("#e0def4"),
		Secondary:    lipgloss.Color("#908caa"),
		Accent:       lipgloss.Color("#ebbcba"),
		Muted:        lipgloss.Color("#6e6a86"),
		Error:        lipgloss.Color("#eb6f92"),
		Success:      lipgloss.Color("#9ccfd8"),
		Border:       lipgloss.Color("#403d52"),
		BorderActive: lipgloss.Color("#c4a7e7"),
		Highlight:    lipgloss.Color("#393552"),
	}

	SolarizedLight = Theme{
		ID:           "solarized-light",
		Name:         "Solarized Light",
		Primary:      lipgloss.Color("#657b83"),
		Secondary:    lipgloss.Color("#93a1a1"),
		Accent:       lipgloss.Color("#d33682"),
		Muted:        lipgloss.Color("#93a1a1"),
		Error:        lipgloss.Color("#dc322f"),
		Success:      lipgloss.Color("#859900"),
		Border:       lipgloss.Color("#eee8d5"),
		BorderActive: lipgloss.Color("#268bd2"),
		Highlight:    lipgloss.Color("#eee8d5"),
	}
)

// AllThemes returns the themes in cycling order.
func AllThemes() []Theme {
	return []Theme{
		CatppuccinMocha,
		Dracula,
		RosePineMoon,
		SolarizedLight,
	}
}

// GetTheme returns a theme by id, defaulting to Catppuccin Mocha if not found.
func GetTheme(id string) Theme {
	for _, t := range AllThemes() {
		if t.ID == id {
			return t
		}
	}
	return CatppuccinMocha
}

// Next returns the theme after t, wrapping around.
func Next(t Theme) Theme {
	all := AllThemes()
	for i, candidate := range all {
		if candidate.ID == t.ID {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Styles are the rendered styles the UI draws with.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Citation lipgloss.Style
	Passage  lipgloss.Style
	Version  lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Toast    lipgloss.Style
	Selected lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.BorderActive),
		Citation: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Passage:  lipgloss.NewStyle().Foreground(t.Primary),
		Version:  lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Help:     lipgloss.NewStyle().Foreground(t.Muted),
		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Error).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Success).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.BorderActive).
			Foreground(t.Accent).
			Padding(0, 0, 0, 1),
	}
}
