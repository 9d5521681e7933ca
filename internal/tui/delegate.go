package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

type taskItem struct {
	task domain.ScheduledTask
}

func (t taskItem) FilterValue() string {
	return t.task.Title + " " + t.task.RepoName
}

type taskDelegate struct {
	styles Styles
	now    time.Time
}

func newTaskDelegate(styles Styles, now time.Time) taskDelegate {
	return taskDelegate{styles: styles, now: now}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	statusStyle := lipgloss.NewStyle().Foreground(StatusColor(task.Status))
	status := fmt.Sprintf("%-11s", task.Status)
	priority := fmt.Sprintf("[%s]", strings.ToUpper(string(task.Priority)))

	title := task.Title
	if selected {
		title = d.styles.Selected.Render("> " + title)
	} else {
		title = d.styles.Normal.Render(title)
	}

	indent := "  "
	if selected {
		indent = " "
	}
	meta := indent + statusStyle.Render(status) + " " +
		d.styles.Status.Render(fmt.Sprintf("%s %s/%s", priority, task.RepoName, task.AssignedToMode))
	if task.DueDate != nil {
		due := " due " + task.DueDate.Format("2006-01-02")
		if task.IsOverdue(d.now) {
			meta += d.styles.Error.Render(due + " OVERDUE")
		} else {
			meta += d.styles.Status.Render(due)
		}
	}

	fmt.Fprintf(w, "%s\n%s", title, meta)
}
