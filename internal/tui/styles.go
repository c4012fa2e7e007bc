package tui

import "charm.land/lipgloss/v2"

// Styles holds the computed lipgloss styles for the feed UI.
type Styles struct {
	Header       lipgloss.Style
	StatusBar    lipgloss.Style
	HelpText     lipgloss.Style
	CardSelected lipgloss.Style
	Card         lipgloss.Style
	CardFooter   lipgloss.Style
	EmptyNotice  lipgloss.Style
	ErrorPanel   lipgloss.Style
	PromoTile    lipgloss.Style
	PromoTitle   lipgloss.Style
	Overlay      lipgloss.Style

	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
}

// DefaultStyles builds the fixed palette used by the feed UI.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		HelpText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(0, 1),
		CardFooter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		EmptyNotice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(2, 4),
		ErrorPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("203")).
			Padding(1, 2),
		PromoTile: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			Width(22),
		PromoTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(1, 2),

		ToastInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("24")).
			Padding(0, 1),
		ToastSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("42")).
			Padding(0, 1),
		ToastError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("124")).
			Padding(0, 1),
	}
}
