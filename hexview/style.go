package hexview

import "github.com/charmbracelet/lipgloss"

// Style controls the hex view's rendering.
type Style struct {
	Address       lipgloss.Style
	AddressActive lipgloss.Style
	Hex           lipgloss.Style
	ASCII         lipgloss.Style
	Placeholder   lipgloss.Style

	Status      lipgloss.Style
	StatusDirty lipgloss.Style
	StatusError lipgloss.Style
}

func DefaultStyle() Style {
	addr := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	status := lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	return Style{
		Address:       addr,
		AddressActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Hex:           lipgloss.NewStyle(),
		ASCII:         lipgloss.NewStyle(),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Status:        status,
		StatusDirty:   status.Foreground(lipgloss.Color("203")).Bold(true),
		StatusError:   status.Foreground(lipgloss.Color("196")),
	}
}
