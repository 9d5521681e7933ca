package usecase

import (
	"context"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// AddTaskInput contains the parameters for scheduling a task.
// Fields are ordered to minimize memory padding.
type AddTaskInput struct {
	DueDate              *time.Time      // Optional deadline
	Metadata             map[string]any  // Free-form task metadata
	Title                string          // Task title (required)
	Description          string          // Task description (optional)
	Type                 string          // Task type tag (optional)
	RepoName             string          // Target repository (required)
	Mode                 string          // Mode the task is assigned to (worknight/weekend)
	Priority             domain.Priority // Empty defaults to medium
	Dependencies         []string        // Task IDs that must complete first
	EstimatedEffortHours float64         // Rough effort estimate
}

// AddTaskOutput contains the created task.
type AddTaskOutput struct {
	Task domain.ScheduledTask
}

// AddTask is the use case for scheduling a new task.
type AddTask struct {
	sched *scheduler.Scheduler
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(sched *scheduler.Scheduler) *AddTask {
	return &AddTask{sched: sched}
}

// Execute validates and persists the task.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	task, err := uc.sched.Add(scheduler.NewTask{
		Title:                in.Title,
		Description:          in.Description,
		Type:                 in.Type,
		RepoName:             in.RepoName,
		Mode:                 in.Mode,
		Priority:             in.Priority,
		DueDate:              in.DueDate,
		Dependencies:         in.Dependencies,
		EstimatedEffortHours: in.EstimatedEffortHours,
		Metadata:             in.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return &AddTaskOutput{Task: task}, nil
}
