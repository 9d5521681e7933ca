package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orchestra-automation/orchestra/internal/app"
	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/usecase"
)

func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage scheduled tasks",
	}

	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskListCommand(c),
		newTaskShowCommand(c),
		newTaskUpdateCommand(c),
		newTaskStatusCommand(c, "complete", domain.TaskCompleted, "Mark a task completed"),
		newTaskStatusCommand(c, "fail", domain.TaskFailed, "Mark a task failed"),
		newTaskStatusCommand(c, "cancel", domain.TaskCancelled, "Cancel a task"),
		newTaskNoteCommand(c),
		newTaskSummaryCommand(c),
		newTaskPruneCommand(c),
	)

	return cmd
}

func newTaskAddCommand(c *app.Container) *cobra.Command {
	var (
		description string
		taskType    string
		repoName    string
		mode        string
		priority    string
		due         string
		effort      float64
		deps        []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.AddTaskInput{
				Title:                args[0],
				Description:          description,
				Type:                 taskType,
				RepoName:             repoName,
				Mode:                 mode,
				Priority:             domain.Priority(priority),
				Dependencies:         deps,
				EstimatedEffortHours: effort,
			}
			if due != "" {
				parsed, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("parse due date %q: %w", due, err)
				}
				in.DueDate = &parsed
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&repoName, "repo", "r", "", "Target repository (required)")
	cmd.Flags().StringVarP(&taskType, "type", "t", "", "Task type tag")
	cmd.Flags().StringVarP(&mode, "mode", "m", domain.TaskModeWorknight, "Mode the task runs in (worknight/weekend)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low/medium/high/urgent)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&effort, "effort", 0, "Estimated effort in hours")
	cmd.Flags().StringSliceVar(&deps, "depends-on", nil, "Task IDs that must complete first")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func newTaskListCommand(c *app.Container) *cobra.Command {
	var (
		repoName string
		mode     string
		all      bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				RepoName:      repoName,
				Mode:          mode,
				IncludeClosed: all,
			})
			if err != nil {
				return err
			}

			if asJSON {
				encoded, err := json.MarshalIndent(out.Tasks, "", "  ")
				if err != nil {
					return fmt.Errorf("encode tasks: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			if len(out.Tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			for _, task := range out.Tasks {
				line := fmt.Sprintf("%-11s [%s] %s  %s",
					task.Status, strings.ToUpper(string(task.Priority)), task.ID, task.Title)
				if task.DueDate != nil {
					line += " (due " + task.DueDate.Format("2006-01-02") + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoName, "repo", "r", "", "Filter by repository")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Filter by assigned mode")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed/failed/cancelled tasks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newTaskShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := c.Scheduler.Get(args[0])
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(task, "", "  ")
			if err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

// newTaskStatusCommand builds the complete/fail/cancel shortcuts, which are
// status updates with an optional note.
func newTaskStatusCommand(c *app.Container, use string, status domain.TaskStatus, short string) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				ID:     args[0],
				Status: status,
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", out.Task.ID, out.Task.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Progress note to record with the change")

	return cmd
}

func newTaskUpdateCommand(c *app.Container) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "update <id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				ID:     args[0],
				Status: domain.TaskStatus(args[1]),
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", out.Task.ID, out.Task.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Progress note to record with the change")

	return cmd
}

func newTaskNoteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> <note>",
		Short: "Append a progress note to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				ID:   args[0],
				Note: args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note added.")
			return nil
		},
	}
}

func newTaskSummaryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show aggregate task counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.TaskSummaryUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(out.Summary, "", "  ")
			if err != nil {
				return fmt.Errorf("encode summary: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

func newTaskPruneCommand(c *app.Container) *cobra.Command {
	var olderThanDays int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old completed and cancelled tasks",
		Long: `Prune removes completed and cancelled tasks older than the cutoff.
Failed tasks are never pruned; they stay visible until someone acts on them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.PruneTasksUseCase().Execute(cmd.Context(), usecase.PruneTasksInput{
				OlderThan: time.Duration(olderThanDays) * 24 * time.Hour,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d tasks.\n", out.Removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&olderThanDays, "older-than", 30, "Age cutoff in days")

	return cmd
}
