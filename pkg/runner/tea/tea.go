// Package teaui is the interactive terminal planner.
package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planner/pkg/app"
)

// Run starts the interactive planner on the alternate screen and blocks
// until the user quits.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
