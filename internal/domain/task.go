// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"time"
)

// Priority is the nominal urgency of a scheduled task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the sort rank of the priority: urgent sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// TaskStatus represents the lifecycle state of a scheduled task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
	TaskCancelled  TaskStatus = "cancelled"
)

// IsOpen returns true if the task still needs work.
func (s TaskStatus) IsOpen() bool {
	return s == TaskPending || s == TaskInProgress
}

// IsTerminal returns true if the task reached a state eligible for
// age-based cleanup. Failed tasks are deliberately excluded so they stay
// visible until someone acts on them.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

// IsValid returns true if the status is a known value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskFailed, TaskCancelled:
		return true
	default:
		return false
	}
}

// Known task type tags. Type is an open string; these are the values the
// executors and convenience constructors produce.
const (
	TaskTypePRImplementation    = "pr_implementation"
	TaskTypeBranchRebase        = "branch_rebase"
	TaskTypeIssueImplementation = "issue_implementation"
)

// Known assigned-to-mode values. AssignedToMode stays an open string so
// operators can park tasks under custom tags, but the executors only pull
// "worknight" and "weekend".
const (
	TaskModeWorknight = "worknight"
	TaskModeWeekend   = "weekend"
)

// ScheduledTask is a durable unit of cross-cycle work. The scheduler owns
// the backing store; nothing else mutates these.
// Fields are ordered to minimize memory padding.
type ScheduledTask struct {
	CreatedAt            time.Time      `json:"created_at"`
	DueDate              *time.Time     `json:"due_date,omitempty"`
	Metadata             map[string]any `json:"metadata"`
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Type                 string         `json:"task_type"`
	RepoName             string         `json:"repo_name"`
	AssignedToMode       string         `json:"assigned_to_mode"`
	Priority             Priority       `json:"priority"`
	Status               TaskStatus     `json:"status"`
	ProgressNotes        []string       `json:"progress_notes"`
	Dependencies         []string       `json:"dependencies"`
	EstimatedEffortHours float64        `json:"estimated_effort_hours"`
}

// NewTaskID derives a human-traceable task ID from repo, type and creation
// time. Collision-resistant at second granularity.
func NewTaskID(repoName, taskType string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%s_%s", repoName, taskType, createdAt.Format("20060102_150405"))
}

// DueUrgency returns the rank adjustment contributed by the due date:
// overdue -10, due within 1 day -5, due within 3 days -2, otherwise 0.
func (t *ScheduledTask) DueUrgency(now time.Time) int {
	if t.DueDate == nil {
		return 0
	}
	if t.DueDate.Before(now) {
		return -10
	}
	days := int(t.DueDate.Sub(now).Hours() / 24)
	switch {
	case days <= 1:
		return -5
	case days <= 3:
		return -2
	default:
		return 0
	}
}

// ScheduleRank is the primary sort key for mode queues: priority rank plus
// due-date urgency. Lower runs first. An overdue low-priority task
// (3 - 10 = -7) deliberately outranks an urgent task with no due date (0):
// deadline pressure beats nominal priority.
func (t *ScheduledTask) ScheduleRank(now time.Time) int {
	return t.Priority.Rank() + t.DueUrgency(now)
}

// IsOverdue reports whether the task has a past due date and is still open.
func (t *ScheduledTask) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status.IsOpen()
}

// AddNote appends a timestamped progress note.
func (t *ScheduledTask) AddNote(now time.Time, note string) {
	t.ProgressNotes = append(t.ProgressNotes, fmt.Sprintf("%s: %s", now.Format(time.RFC3339), note))
}

// TaskSummary aggregates counts over the whole task list.
type TaskSummary struct {
	ByStatus   map[TaskStatus]int `json:"status_breakdown"`
	ByPriority map[Priority]int   `json:"priority_breakdown"`
	ByMode     map[string]int     `json:"mode_breakdown"`
	Total      int                `json:"total_tasks"`
	Overdue    int                `json:"overdue_tasks"`
}
