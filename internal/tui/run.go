package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"chess_rules/internal/console"
)

// Run drives s in a full-screen terminal UI until the player quits.
func Run(s *console.Session) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
