package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/orchestra-automation/orchestra/internal/app"
	"github.com/orchestra-automation/orchestra/internal/tui"
)

// launchBoardFunc is swapped out in tests.
var launchBoardFunc = launchBoard

func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse scheduled tasks in an interactive board",
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}
}

func launchBoard(c *app.Container) error {
	model := tui.New(c.ListTasksUseCase(), c.Clock)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
