// Package cli provides the command-line interface for orchestra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/orchestra-automation/orchestra/internal/app"
)

// Command group IDs.
const (
	groupAutomation = "automation"
	groupTask       = "task"
)

// NewRootCommand creates the root command. It receives the container for
// dependency injection and the version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "orchestra",
		Short: "Time-based automation orchestrator for repository maintenance",
		Long: `orchestra watches the clock and your repositories, classifies each hour
into a work mode (workday, worknight, weekend), and builds mode-appropriate
prompts for an external coding assistant: planning during the day, active
development in the evening, and maintenance audits on weekends.

Cross-cycle work is tracked as scheduled tasks in a persistent store.`,
		Version: version,
		// Errors are rendered in main; usage spam on failures helps nobody.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The flag is parsed in main before the container exists; it is
	// declared here so it shows up in help and passes validation.
	root.PersistentFlags().StringP("config", "c", "", "Config directory (default ~/.config/orchestra)")

	root.AddGroup(
		&cobra.Group{ID: groupAutomation, Title: "Automation:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	runCmd := newRunCommand(c)
	runCmd.GroupID = groupAutomation

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupAutomation

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupTask

	root.AddCommand(
		runCmd,
		statusCmd,
		taskCmd,
		boardCmd,
	)

	return root
}
