package ui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles shared by every page.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Price     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Badge     lipgloss.Style
	Help      lipgloss.Style
	Box       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Title:     lipgloss.NewStyle().Bold(true),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245")),
		TabActive: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("42")).Underline(true),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Price:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Badge:     lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("42")).Foreground(lipgloss.Color("232")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func statusStyle(s Styles, status string) lipgloss.Style {
	switch status {
	case "Processing":
		return s.Warning
	case "Delivered":
		return s.Success
	case "Cancelled":
		return s.Error
	}
	return s.Muted
}
