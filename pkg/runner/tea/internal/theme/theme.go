package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Body   BodyTheme
	Footer FooterTheme
}

// HeaderTheme styles the view title and the view tabs.
type HeaderTheme struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	SelectedTab lipgloss.Style
}

// BodyTheme styles the composed plan.
type BodyTheme struct {
	Section     lipgloss.Style
	Group       lipgloss.Style
	Day         lipgloss.Style
	Today       lipgloss.Style
	Busy        lipgloss.Style
	Muted       lipgloss.Style
	Affirmation lipgloss.Style
	Warning     lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	tab := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")),
			Tab: tab,
			SelectedTab: tab.
				Foreground(lipgloss.Color("212")).
				Bold(true).
				Reverse(true),
		},
		Body: BodyTheme{
			Section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Group:       lipgloss.NewStyle().Italic(true),
			Day:         lipgloss.NewStyle().Bold(true),
			Today:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("218")),
			Busy:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Affirmation: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("177")),
			Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
