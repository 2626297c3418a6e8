package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles used outside the game screen: pickers,
// the status line and the help line.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	Controls        lipgloss.Style
	Notice          lipgloss.Style
	Warning         lipgloss.Style
}

// DefaultTheme returns the garden palette.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Sunflower
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Notice:          lipgloss.NewStyle().Foreground(lipgloss.Color("114")), // Leaf green
		Warning:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// MonochromeTheme returns a theme without colors.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		MenuTitle:       plain.Bold(true),
		MenuItemNormal:  plain,
		MenuItemActive:  plain.Bold(true),
		MenuDescription: plain,
		Controls:        plain,
		Notice:          plain,
		Warning:         plain.Bold(true),
	}
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return theme
}
