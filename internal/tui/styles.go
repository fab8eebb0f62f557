package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/musforbots/mus"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	LogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	HandInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	focusColor = lipgloss.Color("#04B575")
	blurColor  = lipgloss.Color("#626262")
)

var suitStyles = map[mus.Suit]lipgloss.Style{
	mus.Oros:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F4C542")).Bold(true),
	mus.Copas:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	mus.Espadas: lipgloss.NewStyle().Foreground(lipgloss.Color("#6BB5FF")).Bold(true),
	mus.Bastos:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7BD88F")).Bold(true),
}

// CardStyle returns the style for a card's suit.
func CardStyle(c mus.Card) lipgloss.Style {
	return suitStyles[c.Suit]
}
