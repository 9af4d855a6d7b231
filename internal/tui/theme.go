package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used across the dashboard. A single
// instance is built once and shared by the render helpers.
type Styles struct {
	Eyebrow      lipgloss.Style
	Title        lipgloss.Style
	Muted        lipgloss.Style
	Banner       map[string]lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	TableHeader  lipgloss.Style
	RowSelected  lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Available    lipgloss.Style
	Unavailable  lipgloss.Style
	FormLabel    lipgloss.Style
	FormError    lipgloss.Style
	Help         lipgloss.Style
	ConfirmFrame lipgloss.Style
}

// DefaultStyles builds the dashboard color theme.
func DefaultStyles() Styles {
	return Styles{
		Eyebrow:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("99")).Padding(0, 2).Bold(true),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 2),
		TableHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		RowSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("61")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("61")).
			Padding(0, 1),
		CardTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Available:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Unavailable: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		FormLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		FormError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		ConfirmFrame: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 2),
		Banner: map[string]lipgloss.Style{
			"neutral": lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			"success": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
	}
}
