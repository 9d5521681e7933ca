package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/orchestra-automation/orchestra/internal/app"
	"github.com/orchestra-automation/orchestra/internal/domain"
)

var (
	statusTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7"))
	statusLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")).Width(16)
	statusOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894"))
	statusWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E"))
	statusErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D63031"))
)

func newStatusCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current work mode, usage session, and task counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := c.SessionStatusUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := c.TaskSummaryUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				report := map[string]any{
					"session": session,
					"tasks":   summary.Summary,
				}
				encoded, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encode status: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			var b strings.Builder

			b.WriteString(statusTitleStyle.Render("Work Mode") + "\n")
			b.WriteString(statusLabelStyle.Render("  mode") + string(session.Mode) + "\n")
			if session.Mode == domain.ModeOff {
				b.WriteString(statusLabelStyle.Render("  next period") + session.NextWorkPeriod.Format("Mon 15:04") + "\n")
			}
			b.WriteString("\n")

			b.WriteString(statusTitleStyle.Render("Usage Session") + "\n")
			b.WriteString(statusLabelStyle.Render("  status") + renderSessionStatus(session.Status) + "\n")
			if session.Session.Active {
				if session.Session.ElapsedMinutes != nil {
					b.WriteString(statusLabelStyle.Render("  elapsed") + fmt.Sprintf("%d min", *session.Session.ElapsedMinutes) + "\n")
				}
				if session.Session.RemainingMinutes != nil {
					b.WriteString(statusLabelStyle.Render("  remaining") + fmt.Sprintf("%d min", *session.Session.RemainingMinutes) + "\n")
				}
			}
			b.WriteString("\n")

			b.WriteString(statusTitleStyle.Render("Scheduled Tasks") + "\n")
			b.WriteString(statusLabelStyle.Render("  total") + fmt.Sprintf("%d", summary.Summary.Total) + "\n")
			for _, status := range []domain.TaskStatus{
				domain.TaskPending, domain.TaskInProgress, domain.TaskCompleted,
				domain.TaskFailed, domain.TaskCancelled,
			} {
				if n := summary.Summary.ByStatus[status]; n > 0 {
					b.WriteString(statusLabelStyle.Render("  "+string(status)) + fmt.Sprintf("%d", n) + "\n")
				}
			}
			if summary.Summary.Overdue > 0 {
				b.WriteString(statusLabelStyle.Render("  overdue") + statusErrStyle.Render(fmt.Sprintf("%d", summary.Summary.Overdue)) + "\n")
			}

			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func renderSessionStatus(status domain.SessionStatus) string {
	switch status {
	case domain.SessionNormal:
		return statusOKStyle.Render(string(status))
	case domain.SessionMaximize:
		return statusWarnStyle.Render(string(status))
	case domain.SessionExpired:
		return statusErrStyle.Render(string(status))
	default:
		return string(status)
	}
}
