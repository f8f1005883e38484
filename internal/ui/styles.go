package ui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles shared across screens.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Card        lipgloss.Style
	CardLabel   lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	Balance     lipgloss.Style
	Muted       lipgloss.Style
	GroupLabel  lipgloss.Style
	Selected    lipgloss.Style
	ErrorBanner lipgloss.Style
	Notice      lipgloss.Style
	NavActive   lipgloss.Style
	NavItem     lipgloss.Style
	BarOK       lipgloss.Style
	BarWarn     lipgloss.Style
	BarOver     lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		CardLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		Income:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Expense:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Balance:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6b6b6b")),
		GroupLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a290cb")),
		Selected:    lipgloss.NewStyle().Reverse(true),
		ErrorBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true),
		Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("#d29b1d")),
		NavActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		NavItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		BarOK:       lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		BarWarn:     lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		BarOver:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}
