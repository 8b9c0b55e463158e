package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Text   string
	Muted  string
	Accent string
	Danger string
	Good   string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Volume: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		MuteBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Alert: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Connected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Good)),
	}
}

// Styles are the concrete lipgloss styles the views render with.
type Styles struct {
	Text      lipgloss.Style
	MutedText lipgloss.Style
	Title     lipgloss.Style
	Volume    lipgloss.Style
	MuteBadge lipgloss.Style
	Alert     lipgloss.Style
	Connected lipgloss.Style
}

var themes = []Theme{
	{
		Name:   "Dracula",
		Text:   "#f8f8f2",
		Muted:  "#6272a4",
		Accent: "#bd93f9",
		Danger: "#ff5555",
		Good:   "#50fa7b",
	},
	{
		Name:   "Slate",
		Text:   "#d8dee9",
		Muted:  "#4c566a",
		Accent: "#88c0d0",
		Danger: "#bf616a",
		Good:   "#a3be8c",
	},
}

// GetTheme returns the theme with the given name, defaulting to the first.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, cycling.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
