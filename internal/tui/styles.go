// Package tui implements the interactive task board.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// Colors is the board's color palette.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Selected lipgloss.Color

	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Completed  lipgloss.Color
	Failed     lipgloss.Color
	Cancelled  lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"),
	Muted:    lipgloss.Color("#636E72"),
	Error:    lipgloss.Color("#D63031"),
	Success:  lipgloss.Color("#00B894"),
	Warning:  lipgloss.Color("#FDCB6E"),
	Selected: lipgloss.Color("#FFEAA7"),

	Pending:    lipgloss.Color("#74B9FF"),
	InProgress: lipgloss.Color("#FDCB6E"),
	Completed:  lipgloss.Color("#00B894"),
	Failed:     lipgloss.Color("#D63031"),
	Cancelled:  lipgloss.Color("#636E72"),
}

// Styles contains the lipgloss styles for the board.
type Styles struct {
	App      lipgloss.Style
	Header   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns the default board styles.
func DefaultStyles() Styles {
	return Styles{
		App:      lipgloss.NewStyle().Padding(1, 2),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Status:   lipgloss.NewStyle().Foreground(Colors.Muted),
		Error:    lipgloss.NewStyle().Foreground(Colors.Error),
		Help:     lipgloss.NewStyle().Foreground(Colors.Muted),
		Normal:   lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(1).Foreground(Colors.Selected).Bold(true),
	}
}

// StatusColor returns the palette color for a task status.
func StatusColor(status domain.TaskStatus) lipgloss.Color {
	switch status {
	case domain.TaskPending:
		return Colors.Pending
	case domain.TaskInProgress:
		return Colors.InProgress
	case domain.TaskCompleted:
		return Colors.Completed
	case domain.TaskFailed:
		return Colors.Failed
	case domain.TaskCancelled:
		return Colors.Cancelled
	default:
		return Colors.Muted
	}
}
